package system

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/physics"
)

// PickupSystem resolves pick/place input edges
// Edges are queued during dispatch and resolved in Update, after facing was refreshed
type PickupSystem struct {
	world *engine.World

	pending []core.Entity

	statGrasps  *atomic.Int64
	statPlaces  *atomic.Int64
	statMisses  *atomic.Int64
	statDesyncs *atomic.Int64
}

// NewPickupSystem creates the pickup system
func NewPickupSystem(world *engine.World) *PickupSystem {
	s := &PickupSystem{
		world: world,
	}

	s.statGrasps = world.Resources.Status.Ints.Get("pickup.grasps")
	s.statPlaces = world.Resources.Status.Ints.Get("pickup.places")
	s.statMisses = world.Resources.Status.Ints.Get("pickup.misses")
	s.statDesyncs = world.Resources.Status.Ints.Get("pickup.desyncs")

	s.Init()
	return s
}

// Init drops edges left over from a previous level
func (s *PickupSystem) Init() {
	s.pending = s.pending[:0]
}

// Name returns system's name
func (s *PickupSystem) Name() string {
	return "pickup"
}

// Priority returns system's priority
func (s *PickupSystem) Priority() int {
	return parameter.PriorityPickup
}

// EventTypes returns events this system handles
func (s *PickupSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventPickPlace}
}

// HandleEvent queues a pick/place edge
func (s *PickupSystem) HandleEvent(ev event.GameEvent) error {
	if payload, ok := ev.Payload.(*event.PickPlacePayload); ok {
		s.pending = append(s.pending, payload.Picker)
	}
	return nil
}

// Update resolves queued edges in arrival order
// The first picker to grasp an object wins; later sweeps no longer see it
func (s *PickupSystem) Update() error {
	pending := s.pending
	s.pending = s.pending[:0]
	for _, picker := range pending {
		if err := s.TriggerPickup(picker); err != nil {
			return err
		}
	}
	return nil
}

// TriggerPickup places the held object, or sweeps for a new one when empty-handed
// Missing preconditions make it a no-op; only a failed physics query is an error
func (s *PickupSystem) TriggerPickup(picker core.Entity) error {
	cs := s.world.Components
	log := s.world.Resources.Log

	p, ok := cs.Picker.GetComponent(picker)
	if !ok {
		return nil
	}
	facing, ok := cs.Facing.GetComponent(picker)
	if !ok {
		return nil
	}
	// Once the chain reaction owns the camera the player is a spectator
	if !cs.CameraTarget.HasEntity(picker) {
		return nil
	}
	phys := s.world.Resources.Physics
	if phys == nil {
		return nil
	}
	body, ok := phys.Body(picker)
	if !ok {
		return nil
	}
	dir, ok := unitDirection(facing.Direction)
	if !ok {
		return nil
	}

	if p.Holding != core.EntityNone {
		if s.holds(picker, p.Holding) {
			cs.HeldStatus.SetComponent(p.Holding, component.HeldStatusComponent{
				Phase:     component.HeldPlaced,
				Direction: dir,
			})
			p.Immobilized = true
			cs.Picker.SetComponent(picker, p)
			s.statPlaces.Add(1)
			log.Debug("placing", "picker", picker, "held", p.Holding)
			return nil
		}

		log.Warn("picker desync, resetting", "picker", picker, "holding", p.Holding)
		held := p.Holding
		if hb, ok := cs.HeldBy.GetComponent(held); ok && hb.Holder == picker {
			cs.ReleaseHold(held)
		}
		p.Clear()
		cs.Picker.SetComponent(picker, p)
		s.statDesyncs.Add(1)
		s.world.PushEvent(event.EventHoldReleased, &event.HoldReleasedPayload{
			Picker: picker, Held: held, Cause: event.ReleaseDesync,
		})
	}

	sweep := physics.Rect{Width: parameter.PickSweepWidth, Height: parameter.PickSweepHeight}
	hit, found, err := phys.Cast(sweep, body.Position, dir, parameter.PickSweepDistance, func(e core.Entity) bool {
		return e != picker && cs.Pickable.HasEntity(e) && !cs.HeldBy.HasEntity(e)
	})
	if err != nil {
		log.Error("pickup sweep failed", "picker", picker, "err", err)
		return fmt.Errorf("pickup sweep for %d: %w", picker, err)
	}
	if !found {
		s.statMisses.Add(1)
		return nil
	}

	cs.HeldBy.SetComponent(hit.Entity, component.HeldByComponent{Holder: picker})
	cs.HeldStatus.SetComponent(hit.Entity, component.HeldStatusComponent{Phase: component.HeldLifted})
	p.Holding = hit.Entity
	p.Immobilized = true
	cs.Picker.SetComponent(picker, p)
	s.statGrasps.Add(1)
	log.Debug("grasped", "picker", picker, "held", hit.Entity, "distance", hit.Distance)
	return nil
}

// holds reports whether held carries a complete hold pointing back at picker
func (s *PickupSystem) holds(picker, held core.Entity) bool {
	cs := s.world.Components
	hb, ok := cs.HeldBy.GetComponent(held)
	return ok && hb.Holder == picker && cs.HeldStatus.HasEntity(held)
}

// unitDirection normalizes d; false for zero or non-finite vectors
func unitDirection(d mgl64.Vec2) (mgl64.Vec2, bool) {
	l := d.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec2{}, false
	}
	return d.Mul(1 / l), true
}
