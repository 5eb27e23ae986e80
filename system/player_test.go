package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
)

func TestPlayerControlFacingAndSpeed(t *testing.T) {
	tests := []struct {
		name        string
		axis        float64
		immobilized bool
		wantFacing  mgl64.Vec2
		wantVX      float64
	}{
		{"run right", 1, false, mgl64.Vec2{1, 0}, 20},
		{"run left half", -0.5, false, mgl64.Vec2{-1, 0}, -10},
		{"dead zone keeps facing", 0.05, false, mgl64.Vec2{1, 0}, 1},
		{"immobilized turns but stands", -1, true, mgl64.Vec2{-1, 0}, 0},
		{"axis clamped", 3, false, mgl64.Vec2{1, 0}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			player := env.addPlayer(mgl64.Vec2{0, 0})
			env.stub.Bodies[player].LinearVelocity = mgl64.Vec2{7, -2}
			env.world.Components.Picker.SetComponent(player, component.PickerComponent{Immobilized: tt.immobilized})
			s := NewPlayerControlSystem(env.world)

			_ = s.HandleEvent(event.GameEvent{
				Type:    event.EventRunAxis,
				Payload: &event.RunAxisPayload{Player: player, Axis: tt.axis},
			})
			if err := s.Update(); err != nil {
				t.Fatal(err)
			}

			facing, _ := env.world.Components.Facing.GetComponent(player)
			if !vecNear(facing.Direction, tt.wantFacing) {
				t.Fatalf("facing = %v, want %v", facing.Direction, tt.wantFacing)
			}
			v := env.stub.Bodies[player].LinearVelocity
			if !vecNear(v, mgl64.Vec2{tt.wantVX, -2}) {
				t.Fatalf("velocity = %v, want (%v, -2)", v, tt.wantVX)
			}
		})
	}
}

func TestPlayerFallRequestsGameOver(t *testing.T) {
	env := newTestEnv(t)
	player := env.addPlayer(mgl64.Vec2{0, 0})
	s := NewPlayerFallSystem(env.world)

	// No geometry: nothing to fall below
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if len(env.drainEvents()) != 0 {
		t.Fatal("event without geometry")
	}

	env.world.Resources.Arena = fixedArena{lowest: -1, ok: true}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if len(env.drainEvents()) != 0 {
		t.Fatal("event while above the level")
	}

	env.stub.Bodies[player].Position = mgl64.Vec2{0, -3}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if got := env.world.Resources.Session.Reason; got.Kind != engine.OutcomePlayerFell {
		t.Fatalf("reason = %+v", got)
	}
	if countEvents(env.drainEvents(), event.EventGameOverRequest) != 1 {
		t.Fatal("no game over request")
	}
}
