// Package game owns the tick pipeline and the application phases around the simulation core
package game

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/topple/arena"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/engine/fsm"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/level"
	"github.com/lixenwraith/topple/status"
	"github.com/lixenwraith/topple/system"
)

// ProgressRecorder persists finished attempts and the level to resume on
// progress.Store implements it
type ProgressRecorder interface {
	RecordResult(ctx context.Context, level string, completed bool, reason string) error
	SetCurrentLevel(ctx context.Context, level string) error
}

// Options configures a Session
type Options struct {
	// Level is the catalog name to start on; empty starts on the first level
	Level string
	// Progress receives results; nil disables persistence
	Progress ProgressRecorder
}

// Session runs one player's game: the phase machine, the systems and the physics step
// Tick runs on a single goroutine; other goroutines use Push and View
type Session struct {
	world   *engine.World
	router  *engine.EventRouter
	machine *fsm.Machine[*Session]
	camera  *system.CameraSelector
	pickup  *system.PickupSystem

	level    level.Definition
	loaded   level.Loaded
	progress ProgressRecorder

	statPhase    *status.AtomicString
	statLevel    *status.AtomicString
	statReason   *status.AtomicString
	statSimTime  *status.AtomicFloat
	statInPhase  *status.AtomicFloat
	statReleases *atomic.Int64
	statEntities *atomic.Int64
}

// NewSession wires systems and phases around world and enters MainMenu
func NewSession(world *engine.World, opts Options) (*Session, error) {
	def := level.First()
	if opts.Level != "" {
		var err error
		if def, err = level.ByName(opts.Level); err != nil {
			return nil, err
		}
	}

	reg := world.Resources.Status
	s := &Session{
		world:        world,
		router:       engine.NewEventRouter(world.Resources.Events),
		camera:       system.NewCameraSelector(world),
		level:        def,
		progress:     opts.Progress,
		statPhase:    reg.Strings.Get("session.phase"),
		statLevel:    reg.Strings.Get("session.level"),
		statReason:   reg.Strings.Get("session.reason"),
		statSimTime:  reg.Floats.Get("session.sim_seconds"),
		statInPhase:  reg.Floats.Get("session.phase_seconds"),
		statReleases: reg.Ints.Get("session.releases"),
		statEntities: reg.Ints.Get("world.entities"),
	}
	world.Resources.Arena = arena.NewBounds(world)

	player := system.NewPlayerControlSystem(world)
	s.pickup = system.NewPickupSystem(world)
	systems := []engine.System{
		player,
		s.pickup,
		system.NewHoldSystem(world),
		system.NewToppleSystem(world, s.camera),
		system.NewOutcomeSystem(world, s.camera),
		system.NewPlayerFallSystem(world),
	}
	for _, sys := range systems {
		world.AddSystem(sys)
	}

	s.router.Register(player)
	s.router.Register(s.pickup)
	s.router.Register(s)

	machine, err := buildPhases()
	if err != nil {
		return nil, fmt.Errorf("build phases: %w", err)
	}
	s.machine = machine
	if err := s.machine.Init(s, PhaseMainMenu); err != nil {
		return nil, fmt.Errorf("enter main menu: %w", err)
	}
	s.publish()
	return s, nil
}

// EventTypes implements engine.EventHandler
func (s *Session) EventTypes() []event.EventType {
	return append(phaseEvents[:len(phaseEvents):len(phaseEvents)], event.EventHoldReleased)
}

// HandleEvent feeds phase events to the machine and counts hold releases
// Requests with no transition from the current phase are dropped
func (s *Session) HandleEvent(ev event.GameEvent) error {
	if ev.Type == event.EventHoldReleased {
		s.statReleases.Add(1)
		if p, ok := ev.Payload.(*event.HoldReleasedPayload); ok {
			s.world.Resources.Log.Debug("hold released", "held", p.Held, "picker", p.Picker, "cause", p.Cause)
		}
		return nil
	}

	from := s.machine.Current()
	fired, err := s.machine.HandleEvent(s, ev.Type)
	if err != nil {
		return err
	}
	if fired {
		s.world.Resources.Log.Debug("phase change",
			"from", s.machine.StateName(from),
			"to", s.machine.CurrentName(),
			"event", ev.Type,
		)
	} else {
		s.world.Resources.Log.Debug("phase event ignored", "phase", s.machine.CurrentName(), "event", ev.Type)
	}
	return nil
}

// Tick runs one fixed step: events, then systems and physics while Playing
func (s *Session) Tick(dt time.Duration) error {
	s.world.Lock()
	defer s.world.Unlock()
	defer s.publish()

	if err := s.router.DispatchAll(); err != nil {
		s.world.Resources.Log.Error("event dispatch failed", "phase", s.machine.CurrentName(), "err", err)
		return fmt.Errorf("dispatch: %w", err)
	}
	if err := s.machine.Update(s, dt); err != nil {
		return fmt.Errorf("phase update: %w", err)
	}

	if s.machine.Current() != PhasePlaying {
		// Edges seen outside gameplay never carry over into it
		s.pickup.Init()
		return nil
	}

	s.world.Resources.Time.Advance(dt)
	if err := s.world.Update(); err != nil {
		s.world.Resources.Log.Error("system update failed", "level", s.level.Name, "err", err)
		return err
	}
	if phys := s.world.Resources.Physics; phys != nil {
		phys.Step(dt)
	}
	return nil
}

// Push queues an event for the next tick; safe from any goroutine
func (s *Session) Push(t event.EventType, payload any) {
	s.world.RunSafe(func() {
		s.world.PushEvent(t, payload)
	})
}

// View runs fn with the world locked so a reader sees a whole tick
func (s *Session) View(fn func(w *engine.World)) {
	s.world.RunSafe(func() {
		fn(s.world)
	})
}

// Phase returns the current phase; tick goroutine or inside View
func (s *Session) Phase() fsm.StateID {
	return s.machine.Current()
}

// PhaseName returns the current phase name
func (s *Session) PhaseName() string {
	return s.machine.CurrentName()
}

// Level returns the definition of the current level
func (s *Session) Level() level.Definition {
	return s.level
}

// Player returns the loaded player's handle; zero before the first load
func (s *Session) Player() core.Entity {
	return s.loaded.Player
}

// Bricks returns the handles of the loaded level's bricks in definition order
func (s *Session) Bricks() []core.Entity {
	return s.loaded.Bricks
}

// Camera returns the camera target selector
func (s *Session) Camera() *system.CameraSelector {
	return s.camera
}

// World returns the session's world
func (s *Session) World() *engine.World {
	return s.world
}

func (s *Session) publish() {
	s.statPhase.Store(s.machine.CurrentName())
	s.statLevel.Store(s.level.Name)
	s.statReason.Store(describeReason(s.world.Resources.Session.Reason))
	s.statSimTime.Set(s.world.Resources.Time.SimTime.Seconds())
	s.statInPhase.Set(s.machine.TimeInState().Seconds())
}
