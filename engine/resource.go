package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/physics"
	"github.com/lixenwraith/topple/status"
)

// Resource holds the singletons shared by every system, accessed via World.Resources
type Resource struct {
	Time    *TimeResource
	Session *SessionResource

	// Physics is the body world of the loaded level; replaced on every level load
	Physics physics.Engine
	// Arena answers geometry questions about the loaded level
	Arena ArenaQuery

	Events *event.EventQueue
	Log    *log.Logger

	// Telemetry
	Status *status.Registry
}

// NewResource creates resources with a discarding logger and an empty session
func NewResource() Resource {
	return Resource{
		Time:    &TimeResource{},
		Session: &SessionResource{},
		Events:  event.NewEventQueue(),
		Log:     log.New(io.Discard),
		Status:  status.NewRegistry(),
	}
}

// TimeResource is the simulation time seen by systems for the current tick
type TimeResource struct {
	// SimTime is total simulated time since the level started
	SimTime time.Duration

	// DeltaTime is the fixed step being simulated
	DeltaTime time.Duration

	// FrameNumber counts simulated ticks since the session started
	FrameNumber int64
}

// Advance records one simulated step; called only for ticks that run gameplay
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.DeltaTime = dt
	tr.SimTime += dt
	tr.FrameNumber++
}

// ArenaQuery answers questions about static level geometry
type ArenaQuery interface {
	// LowestReferenceHeight is the lowest y reached by any level block; false when the level has none
	LowestReferenceHeight() (float64, bool)
}

// OutcomeKind is why a level ended in failure
type OutcomeKind int

const (
	OutcomeUnset OutcomeKind = iota
	OutcomePlayerFell
	OutcomeStillStanding
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePlayerFell:
		return "PlayerFell"
	case OutcomeStillStanding:
		return "StillStanding"
	default:
		return "Unset"
	}
}

// OutcomeReason explains a game over; Standing is only meaningful for OutcomeStillStanding
type OutcomeReason struct {
	Kind     OutcomeKind
	Standing int
}

// SessionResource is per-level session state
type SessionResource struct {
	Reason OutcomeReason

	// Level is the name of the loaded level
	Level string
}

// ResetReason clears the outcome reason at the start of play
func (sr *SessionResource) ResetReason() {
	sr.Reason = OutcomeReason{}
}
