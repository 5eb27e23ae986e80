package physics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/parameter"
)

// BoxSpec describes a box body to add to a Space
type BoxSpec struct {
	Center       mgl64.Vec2
	Size         mgl64.Vec2
	Angle        float64
	Mass         float64 // Ignored for static boxes
	GravityScale float64 // 0 means 1
	Friction     float64
	LockRotation bool // Infinite moment, used for the player
}

// bodyInfo is stored in cp.Body.UserData
type bodyInfo struct {
	entity       core.Entity
	body         *cp.Body
	shapes       []*cp.Shape
	gravityScale float64
	static       bool
}

// Space is an Engine backed by a chipmunk space
type Space struct {
	space  *cp.Space
	bodies map[core.Entity]*bodyInfo
}

// NewSpace creates an empty chipmunk space with the given gravity
func NewSpace(gravity mgl64.Vec2) *Space {
	space := cp.NewSpace()
	space.Iterations = parameter.SolverIterations
	space.SetCollisionSlop(parameter.CollisionSlop)
	space.SetGravity(toCP(gravity))
	return &Space{
		space:  space,
		bodies: make(map[core.Entity]*bodyInfo),
	}
}

// AddDynamicBox creates a simulated box body for e
func (s *Space) AddDynamicBox(e core.Entity, spec BoxSpec) error {
	if _, exists := s.bodies[e]; exists {
		return fmt.Errorf("add dynamic box %d: %w", e, ErrDuplicateBody)
	}
	if spec.Size[0] <= 0 || spec.Size[1] <= 0 || spec.Mass <= 0 {
		return fmt.Errorf("add dynamic box %d: size %v mass %v: %w", e, spec.Size, spec.Mass, ErrInvalidBody)
	}

	moment := cp.MomentForBox(spec.Mass, spec.Size[0], spec.Size[1])
	if spec.LockRotation {
		moment = math.Inf(1)
	}

	body := cp.NewBody(spec.Mass, moment)
	body.SetPosition(toCP(spec.Center))
	body.SetAngle(spec.Angle)

	info := &bodyInfo{
		entity:       e,
		body:         body,
		gravityScale: spec.GravityScale,
	}
	if info.gravityScale == 0 {
		info.gravityScale = 1
	}
	body.UserData = info

	// Per-body gravity multiplier; the default integrator also clears accumulated force
	scale := info.gravityScale
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
	})

	shape := cp.NewBox(body, spec.Size[0], spec.Size[1], 0)
	shape.SetFriction(spec.Friction)
	shape.UserData = e

	s.space.AddBody(body)
	s.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	s.bodies[e] = info
	return nil
}

// AddStaticBox creates immovable level geometry for e
func (s *Space) AddStaticBox(e core.Entity, spec BoxSpec) error {
	if _, exists := s.bodies[e]; exists {
		return fmt.Errorf("add static box %d: %w", e, ErrDuplicateBody)
	}
	if spec.Size[0] <= 0 || spec.Size[1] <= 0 {
		return fmt.Errorf("add static box %d: size %v: %w", e, spec.Size, ErrInvalidBody)
	}

	body := cp.NewStaticBody()
	body.SetPosition(toCP(spec.Center))
	body.SetAngle(spec.Angle)
	info := &bodyInfo{entity: e, body: body, static: true, gravityScale: 1}
	body.UserData = info

	shape := cp.NewBox(body, spec.Size[0], spec.Size[1], 0)
	shape.SetFriction(spec.Friction)
	shape.UserData = e

	s.space.AddBody(body)
	s.space.AddShape(shape)
	info.shapes = []*cp.Shape{shape}
	s.bodies[e] = info
	return nil
}

// BodyCount returns the number of bodies owned by the space
func (s *Space) BodyCount() int {
	return len(s.bodies)
}

// Body implements Engine
func (s *Space) Body(e core.Entity) (BodyState, bool) {
	info, ok := s.bodies[e]
	if !ok {
		return BodyState{}, false
	}
	b := info.body
	state := BodyState{
		Position:     fromCP(b.Position()),
		Angle:        b.Angle(),
		GravityScale: info.gravityScale,
		Mass:         math.Inf(1),
	}
	if !info.static {
		state.LinearVelocity = fromCP(b.Velocity())
		state.AngularVelocity = b.AngularVelocity()
		state.Mass = b.Mass()
	}
	return state, true
}

// Gravity implements Engine
func (s *Space) Gravity() mgl64.Vec2 {
	return fromCP(s.space.Gravity())
}

func (s *Space) dynamic(e core.Entity) (*cp.Body, bool) {
	info, ok := s.bodies[e]
	if !ok || info.static {
		return nil, false
	}
	return info.body, true
}

// SetLinearVelocity implements Engine
func (s *Space) SetLinearVelocity(e core.Entity, v mgl64.Vec2) {
	if b, ok := s.dynamic(e); ok {
		b.SetVelocity(v[0], v[1])
	}
}

// SetAngularVelocity implements Engine
func (s *Space) SetAngularVelocity(e core.Entity, w float64) {
	if b, ok := s.dynamic(e); ok {
		b.SetAngularVelocity(w)
	}
}

// ApplyForce implements Engine
func (s *Space) ApplyForce(e core.Entity, f mgl64.Vec2) {
	if b, ok := s.dynamic(e); ok {
		b.SetForce(b.Force().Add(toCP(f)))
	}
}

// SetForce implements Engine
func (s *Space) SetForce(e core.Entity, f mgl64.Vec2) {
	if b, ok := s.dynamic(e); ok {
		b.SetForce(toCP(f))
	}
}

// ClearForce implements Engine
func (s *Space) ClearForce(e core.Entity) {
	if b, ok := s.dynamic(e); ok {
		b.SetForce(cp.Vector{})
	}
}

// Cast implements Engine as a swept-circle segment query
// The sweep radius is half the rectangle's extent across the sweep direction
func (s *Space) Cast(shape Rect, origin, dir mgl64.Vec2, maxDist float64, pred Predicate) (Hit, bool, error) {
	if err := validateCast(shape, dir, maxDist); err != nil {
		return Hit{}, false, fmt.Errorf("cast from %v along %v: %w", origin, dir, err)
	}

	d := dir.Normalize()
	start := toCP(origin)
	end := toCP(origin.Add(d.Mul(maxDist)))

	var hits []Hit
	s.space.SegmentQuery(start, end, sweepRadius(shape, d), cp.SHAPE_FILTER_ALL,
		func(sh *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			e, ok := sh.UserData.(core.Entity)
			if !ok {
				return
			}
			hits = append(hits, Hit{Entity: e, Distance: alpha * maxDist})
		}, nil)

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

// CollidingWith implements Engine from the body's active arbiters
func (s *Space) CollidingWith(e core.Entity) ([]core.Entity, error) {
	info, ok := s.bodies[e]
	if !ok {
		return nil, fmt.Errorf("contacts for %d: %w", e, ErrUnknownBody)
	}

	seen := make(map[core.Entity]struct{})
	info.body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		other := b
		if b.Body() == info.body {
			other = a
		}
		if oe, ok := other.UserData.(core.Entity); ok && oe != e {
			seen[oe] = struct{}{}
		}
	})

	result := make([]core.Entity, 0, len(seen))
	for oe := range seen {
		result = append(result, oe)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Step implements Engine
func (s *Space) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt.Seconds())
}

func toCP(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

func fromCP(v cp.Vector) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}
