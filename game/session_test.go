package game

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/engine/fsm"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/level"
)

const step = time.Second / 60

type recorded struct {
	level     string
	completed bool
	reason    string
}

type fakeProgress struct {
	results []recorded
	current []string
	err     error
}

func (f *fakeProgress) RecordResult(_ context.Context, lvl string, completed bool, reason string) error {
	f.results = append(f.results, recorded{lvl, completed, reason})
	return f.err
}

func (f *fakeProgress) SetCurrentLevel(_ context.Context, lvl string) error {
	f.current = append(f.current, lvl)
	return f.err
}

type sessionEnv struct {
	s        *Session
	progress *fakeProgress
	logs     *bytes.Buffer
}

func newSessionEnv(t *testing.T, lvl string) *sessionEnv {
	t.Helper()
	res := engine.NewResource()
	logs := &bytes.Buffer{}
	res.Log = log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})
	world := engine.NewWorld(res)

	progress := &fakeProgress{}
	s, err := NewSession(world, Options{Level: lvl, Progress: progress})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return &sessionEnv{s: s, progress: progress, logs: logs}
}

func (env *sessionEnv) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := env.s.Tick(step); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
}

func (env *sessionEnv) expectPhase(t *testing.T, want fsm.StateID) {
	t.Helper()
	if got := env.s.Phase(); got != want {
		t.Fatalf("phase = %s, want %s", env.s.PhaseName(), env.s.machine.StateName(want))
	}
}

// startPlaying goes MainMenu -> LoadLevel -> Playing
func (env *sessionEnv) startPlaying(t *testing.T) {
	t.Helper()
	env.s.Push(event.EventStart, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseLoadLevel)
	env.tick(t, 1)
	env.expectPhase(t, PhasePlaying)
}

func TestPhaseFlow(t *testing.T) {
	env := newSessionEnv(t, "")
	env.expectPhase(t, PhaseMainMenu)
	if env.s.Player() != 0 {
		t.Fatal("player exists before the first load")
	}

	// Gameplay events in the menu are ignored
	env.s.Push(event.EventPauseToggle, nil)
	env.s.Push(event.EventGameOverRequest, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseMainMenu)

	env.startPlaying(t)
	if env.s.Level().Name != level.First().Name {
		t.Fatalf("level = %q", env.s.Level().Name)
	}
	if len(env.s.Bricks()) != len(level.First().Bricks) {
		t.Fatalf("bricks = %d", len(env.s.Bricks()))
	}
	if cur, ok := env.s.Camera().Current(); !ok || cur != env.s.Player() {
		t.Fatalf("camera = %v, %v, want player", cur, ok)
	}
	if len(env.progress.current) != 1 || env.progress.current[0] != level.First().Name {
		t.Fatalf("current level saves = %v", env.progress.current)
	}

	env.s.Push(event.EventPauseToggle, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhasePaused)

	env.s.Push(event.EventRestart, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseLoadLevel)
	env.tick(t, 1)
	env.expectPhase(t, PhasePlaying)

	if !strings.Contains(env.logs.String(), "phase event ignored") {
		t.Error("ignored menu events were not logged")
	}
}

func TestPauseFreezesPhysics(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)
	brick := env.s.Bricks()[0]
	world := env.s.World()

	env.s.View(func(w *engine.World) {
		w.Resources.Physics.SetAngularVelocity(brick, -0.5)
	})
	env.tick(t, 5)

	env.s.Push(event.EventPauseToggle, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhasePaused)

	before, _ := world.Resources.Physics.Body(brick)
	simBefore := world.Resources.Time.SimTime
	env.tick(t, 30)
	after, _ := world.Resources.Physics.Body(brick)

	if before != after {
		t.Fatalf("body moved while paused: %+v -> %+v", before, after)
	}
	if world.Resources.Time.SimTime != simBefore {
		t.Fatalf("sim time advanced while paused")
	}

	env.s.Push(event.EventPauseToggle, nil)
	env.tick(t, 2)
	resumed, _ := world.Resources.Physics.Body(brick)
	if resumed == after {
		t.Fatal("physics did not resume")
	}
}

func TestPickupEdgeWhilePausedIsDropped(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)

	env.s.Push(event.EventPauseToggle, nil)
	env.s.Push(event.EventPickPlace, &event.PickPlacePayload{Picker: env.s.Player()})
	env.tick(t, 1)
	env.expectPhase(t, PhasePaused)

	env.s.Push(event.EventPauseToggle, nil)
	env.tick(t, 1)
	if n := env.s.World().Resources.Status.Ints.Get("pickup.misses").Load() +
		env.s.World().Resources.Status.Ints.Get("pickup.grasps").Load(); n != 0 {
		t.Fatalf("paused edge was resolved (%d attempts)", n)
	}
}

func TestReasonResetOnlyOnFreshLevel(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)
	sess := env.s.World().Resources.Session

	env.s.View(func(w *engine.World) {
		w.Resources.Session.Reason = engine.OutcomeReason{Kind: engine.OutcomePlayerFell}
	})

	// Resuming from pause keeps the reason
	env.s.Push(event.EventPauseToggle, nil)
	env.s.Push(event.EventPauseToggle, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhasePlaying)
	if sess.Reason.Kind != engine.OutcomePlayerFell {
		t.Fatalf("reason cleared on resume: %v", sess.Reason.Kind)
	}

	env.s.Push(event.EventGameOverRequest, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseGameOver)
	want := recorded{level.First().Name, false, "player fell"}
	if len(env.progress.results) != 1 || env.progress.results[0] != want {
		t.Fatalf("results = %+v, want [%+v]", env.progress.results, want)
	}

	env.s.Push(event.EventRestart, nil)
	env.tick(t, 2)
	env.expectPhase(t, PhasePlaying)
	if sess.Reason.Kind != engine.OutcomeUnset {
		t.Fatalf("reason after restart = %v", sess.Reason.Kind)
	}
}

func TestFirstEndRequestWins(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)

	env.s.Push(event.EventLevelCompleteRequest, nil)
	env.s.Push(event.EventGameOverRequest, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseLevelCompleted)

	if len(env.progress.results) != 1 || !env.progress.results[0].completed {
		t.Fatalf("results = %+v", env.progress.results)
	}
}

func TestNextLevel(t *testing.T) {
	catalog := level.Catalog()

	env := newSessionEnv(t, catalog[0].Name)
	env.startPlaying(t)
	env.s.Push(event.EventLevelCompleteRequest, nil)
	env.tick(t, 1)
	env.s.Push(event.EventNextLevel, nil)
	env.tick(t, 2)
	env.expectPhase(t, PhasePlaying)
	if env.s.Level().Name != catalog[1].Name {
		t.Fatalf("level = %q, want %q", env.s.Level().Name, catalog[1].Name)
	}

	// Restart keeps the level
	env.s.Push(event.EventGameOverRequest, nil)
	env.tick(t, 1)
	env.s.Push(event.EventRestart, nil)
	env.tick(t, 2)
	if env.s.Level().Name != catalog[1].Name {
		t.Fatalf("restart changed level to %q", env.s.Level().Name)
	}

	last := newSessionEnv(t, catalog[len(catalog)-1].Name)
	last.startPlaying(t)
	last.s.Push(event.EventLevelCompleteRequest, nil)
	last.tick(t, 1)
	last.s.Push(event.EventNextLevel, nil)
	last.tick(t, 1)
	last.expectPhase(t, PhaseLevelCompleted)
}

func TestUnknownLevel(t *testing.T) {
	_, err := NewSession(engine.NewWorld(engine.NewResource()), Options{Level: "nowhere"})
	if !errors.Is(err, level.ErrUnknownLevel) {
		t.Fatalf("err = %v, want ErrUnknownLevel", err)
	}
}

func TestProgressFailureIsNotFatal(t *testing.T) {
	env := newSessionEnv(t, "")
	env.progress.err = errors.New("disk full")
	env.startPlaying(t)

	env.s.Push(event.EventGameOverRequest, nil)
	env.tick(t, 1)
	env.expectPhase(t, PhaseGameOver)

	out := env.logs.String()
	if !strings.Contains(out, "record progress failed") || !strings.Contains(out, "save current level failed") {
		t.Fatalf("storage errors not logged:\n%s", out)
	}
}

func TestNilProgress(t *testing.T) {
	s, err := NewSession(engine.NewWorld(engine.NewResource()), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Push(event.EventStart, nil)
	for i := 0; i < 2; i++ {
		if err := s.Tick(step); err != nil {
			t.Fatal(err)
		}
	}
	s.Push(event.EventGameOverRequest, nil)
	if err := s.Tick(step); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s", s.PhaseName())
	}
}

func TestHoldReleasedCounted(t *testing.T) {
	env := newSessionEnv(t, "")
	env.s.Push(event.EventHoldReleased, &event.HoldReleasedPayload{Picker: 1, Held: 2, Cause: event.ReleasePlaced})
	env.tick(t, 1)
	if got := env.s.World().Resources.Status.Ints.Get("session.releases").Load(); got != 1 {
		t.Fatalf("releases = %d", got)
	}
}

func TestStatusPublished(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)
	env.tick(t, 3)

	reg := env.s.World().Resources.Status
	if got := reg.Strings.Get("session.phase").Load(); got != "Playing" {
		t.Errorf("phase stat = %q", got)
	}
	if got := reg.Strings.Get("session.level").Load(); got != level.First().Name {
		t.Errorf("level stat = %q", got)
	}
	if got := reg.Floats.Get("session.sim_seconds").Get(); got <= 0 {
		t.Errorf("sim seconds = %v", got)
	}
	if got := reg.Floats.Get("session.phase_seconds").Get(); got <= 0 || got > reg.Floats.Get("session.sim_seconds").Get()+1 {
		t.Errorf("phase seconds = %v", got)
	}
	def := level.First()
	if got, want := reg.Ints.Get("world.entities").Load(), int64(1+len(def.Blocks)+len(def.Bricks)); got != want {
		t.Errorf("entities stat = %d, want %d", got, want)
	}
}

// A real chain reaction keeps exactly one camera target on every tick and ends the level
func TestChainReactionSingleCameraTarget(t *testing.T) {
	env := newSessionEnv(t, "")
	env.startPlaying(t)
	bricks := env.s.Bricks()
	cameras := env.s.World().Components.CameraTarget

	env.s.View(func(w *engine.World) {
		w.Resources.Physics.SetAngularVelocity(bricks[0], -1)
	})

	followed := false
	for i := 0; i < 60*60 && env.s.Phase() == PhasePlaying; i++ {
		env.tick(t, 1)
		if n := cameras.CountEntities(); n != 1 {
			t.Fatalf("tick %d: %d camera targets", i, n)
		}
		if cur, _ := env.s.Camera().Current(); cur != env.s.Player() {
			followed = true
		}
	}

	if !followed {
		t.Error("camera never left the player")
	}
	if p := env.s.Phase(); p != PhaseLevelCompleted && p != PhaseGameOver {
		t.Fatalf("chain did not settle, phase = %s", env.s.PhaseName())
	}
	if len(env.progress.results) != 1 {
		t.Fatalf("results = %+v", env.progress.results)
	}
	first, _ := env.s.World().Components.Topple.GetComponent(bricks[0])
	if first.State == component.ToppleStanding {
		t.Error("tipped brick still standing")
	}
}
