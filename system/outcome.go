package system

import (
	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/parameter"
)

// Verdict classifies the chain reaction as a whole
type Verdict uint8

const (
	// VerdictUntriggered: nothing has fallen yet (or nothing is tracked)
	VerdictUntriggered Verdict = iota
	// VerdictInProgress: at least one domino is still falling
	VerdictInProgress
	// VerdictStalled: the chain came to rest with dominoes still standing
	VerdictStalled
	// VerdictComplete: every domino stopped or fell out
	VerdictComplete
)

func (v Verdict) String() string {
	switch v {
	case VerdictUntriggered:
		return "Untriggered"
	case VerdictInProgress:
		return "InProgress"
	case VerdictStalled:
		return "Stalled"
	case VerdictComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// ToppleEntry is one tracked domino as seen by DetectOutcome
type ToppleEntry struct {
	Entity core.Entity
	State  component.ToppleState
}

// Outcome is the result of scanning all dominoes
// Focus and Standing are set only for VerdictStalled
type Outcome struct {
	Verdict  Verdict
	Focus    core.Entity
	Standing int
}

// DetectOutcome classifies entries; Focus is the first Standing entry in slice order
func DetectOutcome(entries []ToppleEntry) Outcome {
	standing := 0
	focus := core.EntityNone
	for _, en := range entries {
		switch en.State {
		case component.ToppleFalling:
			return Outcome{Verdict: VerdictInProgress}
		case component.ToppleStanding:
			if standing == 0 {
				focus = en.Entity
			}
			standing++
		}
	}

	switch standing {
	case len(entries):
		return Outcome{Verdict: VerdictUntriggered}
	case 0:
		return Outcome{Verdict: VerdictComplete}
	default:
		return Outcome{Verdict: VerdictStalled, Focus: focus, Standing: standing}
	}
}

// OutcomeSystem turns a settled chain reaction into a game over or level complete request
type OutcomeSystem struct {
	world  *engine.World
	camera *CameraSelector

	entries []ToppleEntry
}

// NewOutcomeSystem creates the outcome detector
func NewOutcomeSystem(world *engine.World, camera *CameraSelector) *OutcomeSystem {
	s := &OutcomeSystem{
		world:  world,
		camera: camera,
	}
	s.Init()
	return s
}

// Init resets session state
func (s *OutcomeSystem) Init() {
	s.entries = s.entries[:0]
}

// Name returns system's name
func (s *OutcomeSystem) Name() string {
	return "outcome"
}

// Priority returns system's priority
func (s *OutcomeSystem) Priority() int {
	return parameter.PriorityOutcome
}

// Update scans dominoes in ascending handle order and requests a phase change once the chain settles
func (s *OutcomeSystem) Update() error {
	store := s.world.Components.Topple
	s.entries = s.entries[:0]
	for _, e := range store.GetAllEntities() {
		t, _ := store.GetComponent(e)
		s.entries = append(s.entries, ToppleEntry{Entity: e, State: t.State})
	}

	out := DetectOutcome(s.entries)
	switch out.Verdict {
	case VerdictStalled:
		s.camera.Assign(out.Focus)
		s.world.Resources.Session.Reason = engine.OutcomeReason{
			Kind:     engine.OutcomeStillStanding,
			Standing: out.Standing,
		}
		s.world.Resources.Log.Info("chain stalled", "standing", out.Standing, "focus", out.Focus)
		s.world.PushEvent(event.EventGameOverRequest, nil)

	case VerdictComplete:
		s.world.Resources.Log.Info("chain complete", "dominoes", len(s.entries))
		s.world.PushEvent(event.EventLevelCompleteRequest, nil)
	}
	return nil
}
