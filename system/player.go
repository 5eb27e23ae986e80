package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/parameter"
)

// PlayerControlSystem applies the run axis to player facing and horizontal velocity
type PlayerControlSystem struct {
	world *engine.World
}

// NewPlayerControlSystem creates the player control system
func NewPlayerControlSystem(world *engine.World) *PlayerControlSystem {
	s := &PlayerControlSystem{world: world}
	s.Init()
	return s
}

// Init is a no-op; run input lives on the player entity
func (s *PlayerControlSystem) Init() {}

// Name returns system's name
func (s *PlayerControlSystem) Name() string {
	return "player_control"
}

// Priority returns system's priority
func (s *PlayerControlSystem) Priority() int {
	return parameter.PriorityPlayerControl
}

// EventTypes returns events this system handles
func (s *PlayerControlSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventRunAxis}
}

// HandleEvent stores the latest run axis, clamped to [-1, 1]
func (s *PlayerControlSystem) HandleEvent(ev event.GameEvent) error {
	payload, ok := ev.Payload.(*event.RunAxisPayload)
	if !ok || !s.world.Components.Player.HasEntity(payload.Player) {
		return nil
	}
	axis := payload.Axis
	if math.IsNaN(axis) {
		axis = 0
	}
	axis = math.Max(-1, math.Min(1, axis))
	s.world.Components.RunInput.SetComponent(payload.Player, component.RunInputComponent{Axis: axis})
	return nil
}

// Update turns players toward their run direction and sets horizontal speed
// An immobilized picker keeps facing control but does not move horizontally
func (s *PlayerControlSystem) Update() error {
	phys := s.world.Resources.Physics
	if phys == nil {
		return nil
	}
	cs := s.world.Components

	for _, e := range cs.Player.GetAllEntities() {
		body, ok := phys.Body(e)
		if !ok {
			continue
		}
		input, _ := cs.RunInput.GetComponent(e)

		if math.Abs(input.Axis) >= parameter.PlayerFacingDeadZone {
			cs.Facing.SetComponent(e, component.FacingComponent{
				Direction: mgl64.Vec2{math.Copysign(1, input.Axis), 0},
			})
		}

		speed := parameter.PlayerRunSpeed * input.Axis
		if p, ok := cs.Picker.GetComponent(e); ok && p.Immobilized {
			speed = 0
		}
		phys.SetLinearVelocity(e, mgl64.Vec2{speed, body.LinearVelocity[1]})
	}
	return nil
}

// PlayerFallSystem ends the game when a player drops below the level
type PlayerFallSystem struct {
	world *engine.World
}

// NewPlayerFallSystem creates the player fall detector
func NewPlayerFallSystem(world *engine.World) *PlayerFallSystem {
	s := &PlayerFallSystem{world: world}
	s.Init()
	return s
}

// Init is a no-op
func (s *PlayerFallSystem) Init() {}

// Name returns system's name
func (s *PlayerFallSystem) Name() string {
	return "player_fall"
}

// Priority returns system's priority
func (s *PlayerFallSystem) Priority() int {
	return parameter.PriorityPlayerFall
}

// Update requests game over with reason PlayerFell for the first player below the lowest block
func (s *PlayerFallSystem) Update() error {
	phys := s.world.Resources.Physics
	arena := s.world.Resources.Arena
	if phys == nil || arena == nil {
		return nil
	}
	lowest, ok := arena.LowestReferenceHeight()
	if !ok {
		return nil
	}

	for _, e := range s.world.Components.Player.GetAllEntities() {
		body, ok := phys.Body(e)
		if !ok || body.Position[1] >= lowest {
			continue
		}
		s.world.Resources.Session.Reason = engine.OutcomeReason{Kind: engine.OutcomePlayerFell}
		s.world.Resources.Log.Info("player fell", "player", e, "y", body.Position[1], "lowest", lowest)
		s.world.PushEvent(event.EventGameOverRequest, nil)
		return nil
	}
	return nil
}
