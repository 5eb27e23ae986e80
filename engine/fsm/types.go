package fsm

import (
	"time"

	"github.com/lixenwraith/topple/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// Machine is a hierarchical finite state machine
// T is the context passed to actions and guards
type Machine[T any] struct {
	// Graph, immutable after CompilePaths
	nodes    map[StateID]*Node[T]
	compiled bool

	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	activePath    []StateID // Root -> Leaf
	timeInState   time.Duration
}

// Node is a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from the outermost ancestor to this node
	Path []StateID

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition links a source node to a target on an event
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventNone = evaluated on Update
	Guard    GuardFunc[T]    // nil = always
}

// Change describes the transition an action runs in
type Change struct {
	From  StateID
	To    StateID
	Event event.EventType
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes an enter or exit side effect
type ActionFunc[T any] func(ctx T, change Change) error
