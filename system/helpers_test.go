package system

import (
	"bytes"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/physics"
)

const eps = 1e-9

type fixedArena struct {
	lowest float64
	ok     bool
}

func (a fixedArena) LowestReferenceHeight() (float64, bool) {
	return a.lowest, a.ok
}

type testEnv struct {
	world *engine.World
	stub  *physics.Stub
	logs  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	res := engine.NewResource()
	logs := &bytes.Buffer{}
	res.Log = log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})
	stub := physics.NewStub(parameter.Gravity)
	res.Physics = stub
	w := engine.NewWorld(res)
	w.Resources.Time.Advance(engine.DefaultTestStep)
	return &testEnv{world: w, stub: stub, logs: logs}
}

// addPlayer creates a camera-holding picker facing +X
func (env *testEnv) addPlayer(pos mgl64.Vec2) core.Entity {
	w := env.world
	e := w.CreateEntity()
	w.Components.Player.SetComponent(e, component.PlayerComponent{})
	w.Components.Picker.SetComponent(e, component.PickerComponent{})
	w.Components.Facing.SetComponent(e, component.FacingComponent{Direction: mgl64.Vec2{1, 0}})
	w.Components.RunInput.SetComponent(e, component.RunInputComponent{})
	w.Components.CameraTarget.SetComponent(e, component.CameraTargetComponent{})
	env.stub.Add(e, physics.StubBody{
		BodyState:   physics.BodyState{Position: pos, Mass: parameter.PlayerMass},
		HalfExtents: mgl64.Vec2{parameter.PlayerWidth / 2, parameter.PlayerHeight / 2},
	})
	return e
}

// addBrick creates a standing pickable domino with the brick profile and no grip offset
func (env *testEnv) addBrick(pos mgl64.Vec2) core.Entity {
	w := env.world
	e := w.CreateEntity()
	w.Components.Pickable.SetComponent(e, component.PickableComponent{})
	w.Components.Topple.SetComponent(e, component.ToppleComponent{})
	env.stub.Add(e, physics.StubBody{
		BodyState: physics.BodyState{
			Position:     pos,
			Mass:         parameter.BrickMass,
			GravityScale: parameter.BrickGravityScale,
		},
		HalfExtents: mgl64.Vec2{parameter.BrickWidth / 2, parameter.BrickHeight / 2},
	})
	return e
}

// hold attaches a complete hold of held by picker in the given phase
func (env *testEnv) hold(picker, held core.Entity, status component.HeldStatusComponent) {
	cs := env.world.Components
	cs.HeldBy.SetComponent(held, component.HeldByComponent{Holder: picker})
	cs.HeldStatus.SetComponent(held, status)
	cs.Picker.SetComponent(picker, component.PickerComponent{Holding: held, Immobilized: true})
}

func (env *testEnv) drainEvents() []event.GameEvent {
	return append([]event.GameEvent(nil), env.world.Resources.Events.Consume()...)
}

func countEvents(events []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func vecNear(a, b mgl64.Vec2) bool {
	return math.Abs(a[0]-b[0]) < 1e-6 && math.Abs(a[1]-b[1]) < 1e-6
}

// assertReleased checks that no hold records survive on held and picker is empty
func (env *testEnv) assertReleased(t *testing.T, picker, held core.Entity) {
	t.Helper()
	cs := env.world.Components
	if cs.HeldBy.HasEntity(held) || cs.HeldStatus.HasEntity(held) || cs.InitialCollisions.HasEntity(held) {
		t.Fatalf("hold records survive on %d", held)
	}
	if p, _ := cs.Picker.GetComponent(picker); p != (component.PickerComponent{}) {
		t.Fatalf("picker not cleared: %+v", p)
	}
}
