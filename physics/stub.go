package physics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/core"
)

// StubBody is a point body with a box extent used for casts
type StubBody struct {
	BodyState
	HalfExtents mgl64.Vec2

	// Force is the force accumulated for the next step
	Force mgl64.Vec2
	// Applied records every ApplyForce since the last step, in call order
	Applied []mgl64.Vec2
	// Static bodies never integrate
	Static bool
}

// Stub is a deterministic in-memory Engine
// Contacts are declared by the caller rather than detected
type Stub struct {
	GravityVec mgl64.Vec2
	Bodies     map[core.Entity]*StubBody
	contacts   map[core.Entity]map[core.Entity]struct{}

	// FailQueries makes Cast and CollidingWith return ErrInvalidQuery
	FailQueries bool
}

// NewStub creates an empty stub world with the given gravity
func NewStub(gravity mgl64.Vec2) *Stub {
	return &Stub{
		GravityVec: gravity,
		Bodies:     make(map[core.Entity]*StubBody),
		contacts:   make(map[core.Entity]map[core.Entity]struct{}),
	}
}

// Add registers a body; mass and gravity scale default to 1 when unset
func (s *Stub) Add(e core.Entity, b StubBody) *StubBody {
	if b.Mass == 0 {
		b.Mass = 1
	}
	if b.GravityScale == 0 {
		b.GravityScale = 1
	}
	body := &b
	s.Bodies[e] = body
	return body
}

// Remove deletes a body and its contacts
func (s *Stub) Remove(e core.Entity) {
	delete(s.Bodies, e)
	for other := range s.contacts[e] {
		delete(s.contacts[other], e)
	}
	delete(s.contacts, e)
}

// SetContact declares a and b touching
func (s *Stub) SetContact(a, b core.Entity) {
	s.link(a, b)
	s.link(b, a)
}

// ClearContact declares a and b apart
func (s *Stub) ClearContact(a, b core.Entity) {
	delete(s.contacts[a], b)
	delete(s.contacts[b], a)
}

func (s *Stub) link(a, b core.Entity) {
	set, ok := s.contacts[a]
	if !ok {
		set = make(map[core.Entity]struct{})
		s.contacts[a] = set
	}
	set[b] = struct{}{}
}

// Body implements Engine
func (s *Stub) Body(e core.Entity) (BodyState, bool) {
	b, ok := s.Bodies[e]
	if !ok {
		return BodyState{}, false
	}
	return b.BodyState, true
}

// Gravity implements Engine
func (s *Stub) Gravity() mgl64.Vec2 {
	return s.GravityVec
}

// SetLinearVelocity implements Engine
func (s *Stub) SetLinearVelocity(e core.Entity, v mgl64.Vec2) {
	if b, ok := s.Bodies[e]; ok {
		b.LinearVelocity = v
	}
}

// SetAngularVelocity implements Engine
func (s *Stub) SetAngularVelocity(e core.Entity, w float64) {
	if b, ok := s.Bodies[e]; ok {
		b.AngularVelocity = w
	}
}

// ApplyForce implements Engine
func (s *Stub) ApplyForce(e core.Entity, f mgl64.Vec2) {
	if b, ok := s.Bodies[e]; ok {
		b.Force = b.Force.Add(f)
		b.Applied = append(b.Applied, f)
	}
}

// SetForce implements Engine
func (s *Stub) SetForce(e core.Entity, f mgl64.Vec2) {
	if b, ok := s.Bodies[e]; ok {
		b.Force = f
	}
}

// ClearForce implements Engine
func (s *Stub) ClearForce(e core.Entity) {
	if b, ok := s.Bodies[e]; ok {
		b.Force = mgl64.Vec2{}
	}
}

// Cast implements Engine with a swept-box test against every body's extents
func (s *Stub) Cast(shape Rect, origin, dir mgl64.Vec2, maxDist float64, pred Predicate) (Hit, bool, error) {
	if s.FailQueries {
		return Hit{}, false, fmt.Errorf("stub cast: %w", ErrInvalidQuery)
	}
	if err := validateCast(shape, dir, maxDist); err != nil {
		return Hit{}, false, fmt.Errorf("stub cast: %w", err)
	}

	d := dir.Normalize()
	normal := mgl64.Vec2{-d[1], d[0]}
	radius := sweepRadius(shape, d)

	var hits []Hit
	for e, b := range s.Bodies {
		rel := b.Position.Sub(origin)
		// Project the body's extents onto the sweep axis and its normal
		along := math.Abs(d[0])*b.HalfExtents[0] + math.Abs(d[1])*b.HalfExtents[1]
		across := math.Abs(normal[0])*b.HalfExtents[0] + math.Abs(normal[1])*b.HalfExtents[1]

		t := rel.Dot(d)
		if t+along < 0 || t-along > maxDist {
			continue
		}
		if math.Abs(rel.Dot(normal)) > across+radius {
			continue
		}
		hits = append(hits, Hit{Entity: e, Distance: math.Max(0, t-along)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Entity < hits[j].Entity
	})
	for _, h := range hits {
		if pred == nil || pred(h.Entity) {
			return h, true, nil
		}
	}
	return Hit{}, false, nil
}

// CollidingWith implements Engine
func (s *Stub) CollidingWith(e core.Entity) ([]core.Entity, error) {
	if s.FailQueries {
		return nil, fmt.Errorf("stub contacts: %w", ErrInvalidQuery)
	}
	if _, ok := s.Bodies[e]; !ok {
		return nil, fmt.Errorf("stub contacts for %d: %w", e, ErrUnknownBody)
	}
	result := make([]core.Entity, 0, len(s.contacts[e]))
	for other := range s.contacts[e] {
		result = append(result, other)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Step integrates forces, gravity and velocities with explicit Euler
func (s *Stub) Step(dt time.Duration) {
	sec := dt.Seconds()
	for _, b := range s.Bodies {
		if !b.Static {
			accel := s.GravityVec.Mul(b.GravityScale).Add(b.Force.Mul(1 / b.Mass))
			b.LinearVelocity = b.LinearVelocity.Add(accel.Mul(sec))
			b.Position = b.Position.Add(b.LinearVelocity.Mul(sec))
			b.Angle += b.AngularVelocity * sec
		}
		b.Force = mgl64.Vec2{}
		b.Applied = b.Applied[:0]
	}
}
