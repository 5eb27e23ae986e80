package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/vmath"
)

// ToppleSystem advances every domino's Standing -> Falling -> Stopped lifecycle and detects fall-out
type ToppleSystem struct {
	world  *engine.World
	camera *CameraSelector

	statFalling *atomic.Int64
	statStopped *atomic.Int64
	statFellOut *atomic.Int64
}

// NewToppleSystem creates the topple tracker
func NewToppleSystem(world *engine.World, camera *CameraSelector) *ToppleSystem {
	s := &ToppleSystem{
		world:  world,
		camera: camera,
	}

	s.statFalling = world.Resources.Status.Ints.Get("topple.falling")
	s.statStopped = world.Resources.Status.Ints.Get("topple.stopped")
	s.statFellOut = world.Resources.Status.Ints.Get("topple.fell_out")

	s.Init()
	return s
}

// Init resets session state
func (s *ToppleSystem) Init() {
	s.statFalling.Store(0)
	s.statStopped.Store(0)
	s.statFellOut.Store(0)
}

// Name returns system's name
func (s *ToppleSystem) Name() string {
	return "topple"
}

// Priority returns system's priority
func (s *ToppleSystem) Priority() int {
	return parameter.PriorityTopple
}

// Update advances state machines by the tick's simulation time, then applies the fall-out check
func (s *ToppleSystem) Update() error {
	phys := s.world.Resources.Physics
	if phys == nil {
		return nil
	}
	store := s.world.Components.Topple
	dt := s.world.Resources.Time.DeltaTime
	entities := store.GetAllEntities()

	for _, e := range entities {
		t, _ := store.GetComponent(e)
		body, ok := phys.Body(e)
		if !ok {
			continue
		}

		switch t.State {
		case component.ToppleStanding:
			if math.Abs(vmath.Tilt(body.Angle)) > parameter.ToppleTiltThreshold {
				t.State = component.ToppleFalling
				t.ImmobileTimer = parameter.ToppleImmobileDuration
				s.camera.Assign(e)
				s.statFalling.Add(1)
				s.world.Resources.Log.Debug("domino falling", "entity", e)
			}

		case component.ToppleFalling:
			moving := vmath.LengthSq(body.LinearVelocity) > parameter.ToppleLinearRestSq ||
				math.Abs(body.AngularVelocity) > parameter.ToppleAngularRest
			if moving {
				t.ImmobileTimer = parameter.ToppleImmobileDuration
			} else {
				t.ImmobileTimer -= dt
				if t.ImmobileTimer <= 0 {
					t.ImmobileTimer = 0
					t.State = component.ToppleStopped
					s.statStopped.Add(1)
				}
			}
		}
		store.SetComponent(e, t)
	}

	// Fall-out needs level geometry; without it the check is skipped this tick
	arena := s.world.Resources.Arena
	if arena == nil {
		return nil
	}
	lowest, ok := arena.LowestReferenceHeight()
	if !ok {
		return nil
	}
	for _, e := range entities {
		t, _ := store.GetComponent(e)
		if t.State == component.ToppleFellOut {
			continue
		}
		body, ok := phys.Body(e)
		if !ok || body.Position[1] >= lowest {
			continue
		}
		s.world.Resources.Log.Debug("domino fell out", "entity", e, "from", t.State)
		t.State = component.ToppleFellOut
		t.ImmobileTimer = 0
		store.SetComponent(e, t)
		s.statFellOut.Add(1)
	}
	return nil
}
