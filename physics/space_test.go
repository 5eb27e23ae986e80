package physics

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/parameter"
)

const (
	floorEntity core.Entity = 1
	boxEntity   core.Entity = 2
	wallEntity  core.Entity = 3
)

func newFloorSpace(t *testing.T) *Space {
	t.Helper()
	s := NewSpace(mgl64.Vec2{0, -10})
	if err := s.AddStaticBox(floorEntity, BoxSpec{
		Center:   mgl64.Vec2{0, -0.5},
		Size:     mgl64.Vec2{20, 1},
		Friction: 1,
	}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSpaceBoxSettlesOnFloor(t *testing.T) {
	s := newFloorSpace(t)
	if err := s.AddDynamicBox(boxEntity, BoxSpec{
		Center:   mgl64.Vec2{0, 2},
		Size:     mgl64.Vec2{1, 1},
		Mass:     1,
		Friction: 1,
	}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 180; i++ {
		s.Step(time.Second / 60)
	}

	body, ok := s.Body(boxEntity)
	if !ok {
		t.Fatal("box missing")
	}
	// Resting overlap is bounded by the solver slop
	if math.Abs(body.Position[1]-0.5) > parameter.CollisionSlop+0.02 {
		t.Fatalf("box y = %v, want ~0.5", body.Position[1])
	}
	contacts, err := s.CollidingWith(boxEntity)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(contacts, []core.Entity{floorEntity}) {
		t.Fatalf("contacts = %v, want [floor]", contacts)
	}
}

func TestSpaceGravityScale(t *testing.T) {
	s := NewSpace(mgl64.Vec2{0, -10})
	_ = s.AddDynamicBox(1, BoxSpec{Center: mgl64.Vec2{0, 0}, Size: mgl64.Vec2{1, 1}, Mass: 1})
	_ = s.AddDynamicBox(2, BoxSpec{Center: mgl64.Vec2{5, 0}, Size: mgl64.Vec2{1, 1}, Mass: 1, GravityScale: 5})

	s.Step(100 * time.Millisecond)

	normal, _ := s.Body(1)
	heavy, _ := s.Body(2)
	if heavy.GravityScale != 5 || normal.GravityScale != 1 {
		t.Fatalf("scales = %v, %v", normal.GravityScale, heavy.GravityScale)
	}
	ratio := heavy.LinearVelocity[1] / normal.LinearVelocity[1]
	if math.Abs(ratio-5) > 1e-6 {
		t.Fatalf("velocity ratio = %v, want 5", ratio)
	}
}

func TestSpaceForceCancelsGravity(t *testing.T) {
	s := NewSpace(mgl64.Vec2{0, -10})
	_ = s.AddDynamicBox(1, BoxSpec{Center: mgl64.Vec2{0, 0}, Size: mgl64.Vec2{1, 1}, Mass: 2, GravityScale: 3})

	body, _ := s.Body(1)
	s.SetForce(1, s.Gravity().Mul(-body.GravityScale*body.Mass))
	s.Step(100 * time.Millisecond)

	body, _ = s.Body(1)
	if body.LinearVelocity.Len() > 1e-9 {
		t.Fatalf("velocity = %v, want zero", body.LinearVelocity)
	}
}

func TestSpaceCast(t *testing.T) {
	s := newFloorSpace(t)
	_ = s.AddDynamicBox(boxEntity, BoxSpec{Center: mgl64.Vec2{1.5, 1}, Size: mgl64.Vec2{0.2, 2}, Mass: 1})
	_ = s.AddDynamicBox(wallEntity, BoxSpec{Center: mgl64.Vec2{3, 1}, Size: mgl64.Vec2{0.2, 2}, Mass: 1})
	sweep := Rect{Width: 0, Height: 0.5}

	hit, ok, err := s.Cast(sweep, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}, 2, nil)
	if err != nil || !ok || hit.Entity != boxEntity {
		t.Fatalf("hit = %+v ok=%v err=%v", hit, ok, err)
	}
	if hit.Distance <= 0 || hit.Distance > 1.5 {
		t.Fatalf("distance = %v", hit.Distance)
	}

	// Predicate skips the first body; the second is beyond reach
	_, ok, _ = s.Cast(sweep, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}, 2, func(e core.Entity) bool { return e != boxEntity })
	if ok {
		t.Fatal("cast reached beyond max distance")
	}

	hit, ok, _ = s.Cast(sweep, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}, 4, func(e core.Entity) bool { return e != boxEntity })
	if !ok || hit.Entity != wallEntity {
		t.Fatalf("filtered hit = %+v, %v", hit, ok)
	}

	_, _, err = s.Cast(sweep, mgl64.Vec2{0, 1}, mgl64.Vec2{}, 2, nil)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("zero direction err = %v", err)
	}
	_, _, err = s.Cast(Rect{Width: -1}, mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}, 2, nil)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("negative shape err = %v", err)
	}
}

func TestSpaceBodyLifecycle(t *testing.T) {
	s := newFloorSpace(t)
	if err := s.AddStaticBox(floorEntity, BoxSpec{Size: mgl64.Vec2{1, 1}}); !errors.Is(err, ErrDuplicateBody) {
		t.Fatalf("duplicate err = %v", err)
	}
	if err := s.AddDynamicBox(9, BoxSpec{Size: mgl64.Vec2{1, 1}}); !errors.Is(err, ErrInvalidBody) {
		t.Fatalf("massless err = %v", err)
	}
	if err := s.AddStaticBox(10, BoxSpec{Size: mgl64.Vec2{0, 1}}); !errors.Is(err, ErrInvalidBody) {
		t.Fatalf("flat static err = %v", err)
	}
	if errors.Is(ErrInvalidBody, ErrInvalidQuery) {
		t.Fatal("body and query errors must stay distinct")
	}

	if s.BodyCount() != 1 {
		t.Fatalf("rejected bodies were kept: count = %d", s.BodyCount())
	}
	if _, ok := s.Body(9); ok {
		t.Fatal("massless body was added")
	}
	if _, err := s.CollidingWith(9); !errors.Is(err, ErrUnknownBody) {
		t.Fatalf("contacts err = %v", err)
	}
}

func TestSpaceStaticBodyIgnoresControl(t *testing.T) {
	s := newFloorSpace(t)
	s.SetLinearVelocity(floorEntity, mgl64.Vec2{5, 5})
	s.ApplyForce(floorEntity, mgl64.Vec2{100, 100})
	s.Step(time.Second / 60)

	body, _ := s.Body(floorEntity)
	if body.Position.Sub(mgl64.Vec2{0, -0.5}).Len() > 1e-9 || !math.IsInf(body.Mass, 1) {
		t.Fatalf("static body = %+v", body)
	}
}
