// Package physics is the narrow contract between the simulation core and a 2D rigid-body engine
// Space implements it over chipmunk (jakecoffman/cp); Stub is an in-memory stand-in for tests
package physics

import (
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/core"
)

var (
	// ErrInvalidQuery marks a cast or contact query the engine cannot answer
	ErrInvalidQuery = errors.New("physics: invalid query")

	// ErrInvalidBody marks a body description with non-positive size or mass
	ErrInvalidBody = errors.New("physics: invalid body")

	// ErrUnknownBody marks an operation on a handle the engine has no body for
	ErrUnknownBody = errors.New("physics: unknown body")

	// ErrDuplicateBody is returned when a handle already owns a body
	ErrDuplicateBody = errors.New("physics: body already exists")
)

// BodyState is the per-step snapshot the core reads for one body
type BodyState struct {
	Position        mgl64.Vec2
	Angle           float64 // Radians, 0 = upright
	LinearVelocity  mgl64.Vec2
	AngularVelocity float64
	Mass            float64
	GravityScale    float64
}

// Rect is an axis-aligned rectangle swept by Cast, oriented to the world axes
type Rect struct {
	Width, Height float64
}

// Validate rejects shapes a cast cannot be built from
func (r Rect) Validate() error {
	if math.IsNaN(r.Width) || math.IsNaN(r.Height) || r.Width < 0 || r.Height < 0 {
		return ErrInvalidQuery
	}
	return nil
}

// Hit is the first accepted body along a cast
type Hit struct {
	Entity   core.Entity
	Distance float64
}

// Predicate filters cast candidates; returning false skips the body
type Predicate func(core.Entity) bool

// Engine is everything the core needs from the physics world
type Engine interface {
	// Body returns the current state of e; false if the engine has no such body
	Body(e core.Entity) (BodyState, bool)

	// Gravity returns world gravity before per-body scaling
	Gravity() mgl64.Vec2

	SetLinearVelocity(e core.Entity, v mgl64.Vec2)
	SetAngularVelocity(e core.Entity, w float64)

	// ApplyForce adds to the force accumulated for the next step
	ApplyForce(e core.Entity, f mgl64.Vec2)
	// SetForce replaces the accumulated force
	SetForce(e core.Entity, f mgl64.Vec2)
	// ClearForce zeroes the accumulated force
	ClearForce(e core.Entity)

	// Cast sweeps shape from origin along dir up to maxDist and returns the nearest body accepted by pred
	Cast(shape Rect, origin, dir mgl64.Vec2, maxDist float64, pred Predicate) (Hit, bool, error)

	// CollidingWith lists bodies currently in contact with e, ascending
	CollidingWith(e core.Entity) ([]core.Entity, error)

	// Step advances the simulation by dt
	Step(dt time.Duration)
}

// validateCast checks the parts of a cast shared by every engine
func validateCast(shape Rect, dir mgl64.Vec2, maxDist float64) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if math.IsNaN(maxDist) || maxDist < 0 {
		return ErrInvalidQuery
	}
	if dir.Dot(dir) == 0 || math.IsNaN(dir[0]) || math.IsNaN(dir[1]) {
		return ErrInvalidQuery
	}
	return nil
}

// sweepRadius is half the shape's extent perpendicular to the sweep direction
func sweepRadius(shape Rect, dir mgl64.Vec2) float64 {
	d := dir.Normalize()
	return (math.Abs(d[0])*shape.Height + math.Abs(d[1])*shape.Width) / 2
}
