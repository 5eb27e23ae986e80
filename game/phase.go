package game

import (
	"context"
	"fmt"

	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/engine/fsm"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/level"
	"github.com/lixenwraith/topple/parameter"
)

// Application phases
const (
	PhaseMainMenu fsm.StateID = iota + 1
	PhaseLoadLevel
	PhasePlaying
	PhasePaused
	PhaseLevelCompleted
	PhaseGameOver
)

// phaseEvents are the event types the phase machine consumes
var phaseEvents = []event.EventType{
	event.EventStart,
	event.EventLevelLoaded,
	event.EventPauseToggle,
	event.EventRestart,
	event.EventNextLevel,
	event.EventGameOverRequest,
	event.EventLevelCompleteRequest,
}

// buildPhases declares the phase graph and its actions
func buildPhases() (*fsm.Machine[*Session], error) {
	m := fsm.NewMachine[*Session]()

	m.AddState(PhaseMainMenu, "MainMenu", fsm.StateNone)
	m.AddState(PhaseLoadLevel, "LoadLevel", fsm.StateNone)
	m.AddState(PhasePlaying, "Playing", fsm.StateNone)
	m.AddState(PhasePaused, "Paused", fsm.StateNone)
	m.AddState(PhaseLevelCompleted, "LevelCompleted", fsm.StateNone)
	m.AddState(PhaseGameOver, "GameOver", fsm.StateNone)

	transitions := []struct {
		from fsm.StateID
		t    fsm.Transition[*Session]
	}{
		{PhaseMainMenu, fsm.Transition[*Session]{TargetID: PhaseLoadLevel, Event: event.EventStart}},
		{PhaseLoadLevel, fsm.Transition[*Session]{TargetID: PhasePlaying, Event: event.EventLevelLoaded}},
		{PhasePlaying, fsm.Transition[*Session]{TargetID: PhasePaused, Event: event.EventPauseToggle}},
		{PhasePlaying, fsm.Transition[*Session]{TargetID: PhaseGameOver, Event: event.EventGameOverRequest}},
		{PhasePlaying, fsm.Transition[*Session]{TargetID: PhaseLevelCompleted, Event: event.EventLevelCompleteRequest}},
		{PhasePaused, fsm.Transition[*Session]{TargetID: PhasePlaying, Event: event.EventPauseToggle}},
		{PhasePaused, fsm.Transition[*Session]{TargetID: PhaseLoadLevel, Event: event.EventRestart}},
		{PhaseGameOver, fsm.Transition[*Session]{TargetID: PhaseLoadLevel, Event: event.EventRestart}},
		{PhaseLevelCompleted, fsm.Transition[*Session]{TargetID: PhaseLoadLevel, Event: event.EventRestart}},
		{PhaseLevelCompleted, fsm.Transition[*Session]{TargetID: PhaseLoadLevel, Event: event.EventNextLevel, Guard: hasNextLevel}},
	}
	for _, tr := range transitions {
		if err := m.AddTransition(tr.from, tr.t); err != nil {
			return nil, err
		}
	}

	actions := []struct {
		id fsm.StateID
		fn fsm.ActionFunc[*Session]
	}{
		{PhaseLoadLevel, enterLoadLevel},
		{PhasePlaying, enterPlaying},
		{PhaseLevelCompleted, enterLevelCompleted},
		{PhaseGameOver, enterGameOver},
	}
	for _, a := range actions {
		if err := m.OnEnter(a.id, a.fn); err != nil {
			return nil, err
		}
	}

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

func hasNextLevel(s *Session) bool {
	_, ok := level.Next(s.level.Name)
	return ok
}

// enterLoadLevel rebuilds the world and physics for the current level
func enterLoadLevel(s *Session, change fsm.Change) error {
	if change.Event == event.EventNextLevel {
		if next, ok := level.Next(s.level.Name); ok {
			s.level = next
		}
	}

	loaded, err := level.Load(s.world, s.level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	s.loaded = loaded
	s.world.Resources.Time.SimTime = 0
	s.world.InitSystems()
	s.statEntities.Store(int64(s.world.EntityCount()))

	s.rememberLevel()
	s.world.Resources.Log.Info("level loaded",
		"level", s.level.Name,
		"bricks", len(loaded.Bricks),
		"bodies", loaded.Space.BodyCount(),
	)
	s.world.PushEvent(event.EventLevelLoaded, nil)
	return nil
}

// enterPlaying clears the previous outcome only when a fresh level starts
func enterPlaying(s *Session, change fsm.Change) error {
	if change.From == PhaseLoadLevel {
		s.world.Resources.Session.ResetReason()
	}
	return nil
}

func enterLevelCompleted(s *Session, _ fsm.Change) error {
	s.world.Resources.Log.Info("level completed", "level", s.level.Name)
	s.record(true, "")
	return nil
}

func enterGameOver(s *Session, _ fsm.Change) error {
	reason := describeReason(s.world.Resources.Session.Reason)
	s.world.Resources.Log.Info("game over", "level", s.level.Name, "reason", reason)
	s.record(false, reason)
	return nil
}

// describeReason renders an outcome reason for logs, the status line and stored results
func describeReason(r engine.OutcomeReason) string {
	switch r.Kind {
	case engine.OutcomePlayerFell:
		return "player fell"
	case engine.OutcomeStillStanding:
		return fmt.Sprintf("%d still standing", r.Standing)
	default:
		return ""
	}
}

// record stores a finished attempt; storage failures are logged and never end the game
func (s *Session) record(completed bool, reason string) {
	if s.progress == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), parameter.ProgressWriteTimeout)
	defer cancel()
	if err := s.progress.RecordResult(ctx, s.level.Name, completed, reason); err != nil {
		s.world.Resources.Log.Error("record progress failed", "level", s.level.Name, "err", err)
	}
}

func (s *Session) rememberLevel() {
	if s.progress == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), parameter.ProgressWriteTimeout)
	defer cancel()
	if err := s.progress.SetCurrentLevel(ctx, s.level.Name); err != nil {
		s.world.Resources.Log.Error("save current level failed", "level", s.level.Name, "err", err)
	}
}
