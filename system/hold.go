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
	"github.com/lixenwraith/topple/vmath"
)

// HoldSystem drives held objects toward their hold targets with velocity-matching forces
// It also breaks holds on new contacts and heals picker/held desyncs
// Every release clears HeldBy, HeldStatus, InitialCollisions and the picker in the same call
type HoldSystem struct {
	world *engine.World

	statPlaced    *atomic.Int64
	statBroken    *atomic.Int64
	statDesyncs   *atomic.Int64
	statHeldCount *atomic.Int64
}

// NewHoldSystem creates the hold system
func NewHoldSystem(world *engine.World) *HoldSystem {
	s := &HoldSystem{
		world: world,
	}

	s.statPlaced = world.Resources.Status.Ints.Get("hold.placed")
	s.statBroken = world.Resources.Status.Ints.Get("hold.broken")
	s.statDesyncs = world.Resources.Status.Ints.Get("hold.desyncs")
	s.statHeldCount = world.Resources.Status.Ints.Get("hold.count")

	s.Init()
	return s
}

// Init resets session state
func (s *HoldSystem) Init() {
	s.statHeldCount.Store(0)
}

// Name returns system's name
func (s *HoldSystem) Name() string {
	return "hold"
}

// Priority returns system's priority
func (s *HoldSystem) Priority() int {
	return parameter.PriorityHold
}

// Update runs one hold step over every held entity in ascending order, then sweeps pickers
func (s *HoldSystem) Update() error {
	phys := s.world.Resources.Physics
	if phys == nil {
		return nil
	}
	dt := stepSeconds(s.world)

	for _, e := range s.world.Components.HeldBy.GetAllEntities() {
		if err := s.step(phys, e, dt); err != nil {
			return err
		}
	}

	s.sweepPickers()
	s.statHeldCount.Store(int64(s.world.Components.HeldBy.CountEntities()))
	return nil
}

// step advances one held entity
func (s *HoldSystem) step(phys physics.Engine, e core.Entity, dt float64) error {
	cs := s.world.Components
	log := s.world.Resources.Log

	held, _ := cs.HeldBy.GetComponent(e)
	status, ok := cs.HeldStatus.GetComponent(e)
	if !ok {
		log.Warn("held entity without status, dropping", "held", e, "holder", held.Holder)
		s.release(phys, e, held.Holder, event.ReleaseDesync)
		return nil
	}

	picker, ok := cs.Picker.GetComponent(held.Holder)
	pickerBody, hasBody := phys.Body(held.Holder)
	if !ok || !hasBody {
		s.release(phys, e, held.Holder, event.ReleaseHolderLost)
		return nil
	}
	if picker.Holding != e {
		log.Warn("held entity not claimed by its holder, dropping", "held", e, "holder", held.Holder, "holding", picker.Holding)
		s.release(phys, e, held.Holder, event.ReleaseDesync)
		return nil
	}

	body, ok := phys.Body(e)
	if !ok {
		s.release(phys, e, held.Holder, event.ReleaseHolderLost)
		return nil
	}

	broken, err := s.contactBroken(phys, e, held.Holder)
	if err != nil {
		return err
	}
	if broken {
		log.Debug("hold broken by contact", "held", e, "holder", held.Holder)
		s.statBroken.Add(1)
		s.release(phys, e, held.Holder, event.ReleaseCollision)
		return nil
	}

	// Anti-gravity for this entity's own gravity scale
	phys.SetForce(e, phys.Gravity().Mul(-body.GravityScale*body.Mass))
	// One-step snap back to upright
	phys.SetAngularVelocity(e, vmath.AngleBetween(body.Angle, 0)/dt)

	offset := mgl64.Vec2{}
	if pickable, ok := cs.Pickable.GetComponent(e); ok {
		offset = pickable.HoldOffset
	}

	var desired mgl64.Vec2
	switch status.Phase {
	case component.HeldLifted:
		gap := pickerBody.Position.Add(parameter.PickerLiftOffset).Sub(offset).Sub(body.Position)
		desired = LiftVelocity(gap, dt)
		if vmath.LengthSq(gap) < parameter.HoldArrivalDistSq {
			status.Phase = component.HeldCarried
			cs.HeldStatus.SetComponent(e, status)
			picker.Immobilized = false
			cs.Picker.SetComponent(held.Holder, picker)
		}

	case component.HeldCarried:
		gap := pickerBody.Position.Add(parameter.PickerLiftOffset).Sub(offset).Sub(body.Position)
		desired = gap.Mul(parameter.CarryGain / dt).Add(pickerBody.LinearVelocity)

	case component.HeldPlaced:
		dir := status.Direction
		target := pickerBody.Position.
			Add(dir.Mul(parameter.PlaceForwardDistance)).
			Sub(offset).
			Add(parameter.PlaceDropOffset)
		gap := target.Sub(body.Position)
		if vmath.LengthSq(gap) < parameter.HoldArrivalDistSq {
			phys.SetLinearVelocity(e, mgl64.Vec2{})
			s.statPlaced.Add(1)
			s.release(phys, e, held.Holder, event.ReleasePlaced)
			return nil
		}
		desired = PlaceVelocity(gap, dir, dt)
	}

	phys.ApplyForce(e, desired.Sub(body.LinearVelocity).Mul(1/dt))
	return nil
}

// LiftVelocity is the commanded velocity while lifting toward a target gap away
// Far below the target it rises at constant speed; close to it the horizontal gap decides the cap
func LiftVelocity(gap mgl64.Vec2, dt float64) mgl64.Vec2 {
	if gap[1] > parameter.LiftVerticalGap {
		return mgl64.Vec2{0, parameter.HoldMoveSpeed}
	}
	return capApproach(gap, math.Abs(gap[0]), dt)
}

// PlaceVelocity is the commanded velocity while placing along dir
// Until the object is ahead of the drop point it only descends
func PlaceVelocity(gap, dir mgl64.Vec2, dt float64) mgl64.Vec2 {
	along := gap.Dot(dir)
	if along < parameter.PlaceForwardGap {
		return mgl64.Vec2{0, -parameter.HoldMoveSpeed}
	}
	return capApproach(gap, math.Abs(along), dt)
}

// capApproach moves at exactly max speed when one step cannot close remaining, otherwise at most max speed
func capApproach(gap mgl64.Vec2, remaining, dt float64) mgl64.Vec2 {
	speed := parameter.HoldMoveSpeed
	if 2*speed*dt < remaining {
		return vmath.ClampLength(gap, speed, speed)
	}
	return vmath.ClampLengthMax(gap, speed)
}

// contactBroken snapshots contacts on the first held tick and afterwards reports any new contact
// Contacts with the holder never count
func (s *HoldSystem) contactBroken(phys physics.Engine, e, holder core.Entity) (bool, error) {
	cs := s.world.Components

	contacts, err := phys.CollidingWith(e)
	if err != nil {
		return false, fmt.Errorf("contacts of held %d: %w", e, err)
	}

	initial, ok := cs.InitialCollisions.GetComponent(e)
	if !ok {
		touching := make(map[core.Entity]bool, len(contacts))
		for _, c := range contacts {
			if c != holder {
				touching[c] = true
			}
		}
		cs.InitialCollisions.SetComponent(e, component.InitialCollisionsComponent{Touching: touching})
		return false, nil
	}

	for c := range initial.Touching {
		initial.Touching[c] = false
	}
	for _, c := range contacts {
		if c == holder {
			continue
		}
		if _, known := initial.Touching[c]; !known {
			return true, nil
		}
		initial.Touching[c] = true
	}
	return false, nil
}

// release ends the hold on e and resets holder if it still points at e
func (s *HoldSystem) release(phys physics.Engine, e, holder core.Entity, cause event.ReleaseCause) {
	cs := s.world.Components

	phys.ClearForce(e)
	cs.ReleaseHold(e)
	if p, ok := cs.Picker.GetComponent(holder); ok && p.Holding == e {
		p.Clear()
		cs.Picker.SetComponent(holder, p)
	}
	if cause == event.ReleaseDesync {
		s.statDesyncs.Add(1)
	}

	s.world.PushEvent(event.EventHoldReleased, &event.HoldReleasedPayload{
		Picker: holder, Held: e, Cause: cause,
	})
}

// sweepPickers clears every picker whose Holding no longer resolves to a hold pointing back at it
func (s *HoldSystem) sweepPickers() {
	cs := s.world.Components
	for _, pe := range cs.Picker.GetAllEntities() {
		p, _ := cs.Picker.GetComponent(pe)
		if p.Holding == core.EntityNone {
			continue
		}
		hb, ok := cs.HeldBy.GetComponent(p.Holding)
		if ok && hb.Holder == pe && cs.HeldStatus.HasEntity(p.Holding) {
			continue
		}

		s.world.Resources.Log.Warn("picker desync, resetting", "picker", pe, "holding", p.Holding)
		held := p.Holding
		if ok && hb.Holder == pe {
			cs.ReleaseHold(held)
		}
		p.Clear()
		cs.Picker.SetComponent(pe, p)
		s.statDesyncs.Add(1)
		s.world.PushEvent(event.EventHoldReleased, &event.HoldReleasedPayload{
			Picker: pe, Held: held, Cause: event.ReleaseDesync,
		})
	}
}
