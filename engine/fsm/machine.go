package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/topple/event"
)

// NewMachine creates an empty machine
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters initialID, running OnEnter from the outermost ancestor down
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	if !m.compiled {
		return fmt.Errorf("init before CompilePaths")
	}
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state %d not found", initialID)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.activePath = append(m.activePath[:0], node.Path...)
	m.timeInState = 0

	change := Change{From: StateNone, To: initialID}
	for _, id := range m.activePath {
		if err := m.runActions(ctx, m.nodes[id].OnEnter, change); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active leaf's name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// StateName returns the name of id, empty if unknown
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time accumulated by Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Update accumulates time and evaluates EventNone transitions, bubbling from leaf to top
func (m *Machine[T]) Update(ctx T, dt time.Duration) error {
	if m.activeStateID == StateNone {
		return nil
	}
	m.timeInState += dt
	_, err := m.fire(ctx, event.EventNone)
	return err
}

// HandleEvent routes an event from the active leaf up through its ancestors
// Returns true if a transition fired; an event with no matching transition is ignored
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) (bool, error) {
	if m.activeStateID == StateNone || eventType == event.EventNone {
		return false, nil
	}
	return m.fire(ctx, eventType)
}

func (m *Machine[T]) fire(ctx T, eventType event.EventType) (bool, error) {
	for currID := m.activeStateID; currID != StateNone; {
		node := m.nodes[currID]
		for _, t := range node.Transitions {
			if t.Event != eventType {
				continue
			}
			if t.Guard == nil || t.Guard(ctx) {
				return true, m.transition(ctx, t.TargetID, eventType)
			}
		}
		currID = node.ParentID
	}
	return false, nil
}

// transition exits up to the lowest common ancestor and enters down to the target
// A transition to the active leaf is an external self-transition and re-runs its exit and enter actions
func (m *Machine[T]) transition(ctx T, targetID StateID, eventType event.EventType) error {
	target := m.nodes[targetID]
	current := m.activePath
	targetPath := target.Path

	lca := -1
	for i := 0; i < len(current) && i < len(targetPath); i++ {
		if current[i] != targetPath[i] {
			break
		}
		lca = i
	}
	if targetID == m.activeStateID {
		lca = len(targetPath) - 2
	}

	change := Change{From: m.activeStateID, To: targetID, Event: eventType}

	// State is committed before actions run so that actions observe the target
	m.activeStateID = targetID
	m.activePath = append(m.activePath[:0:0], targetPath...)
	m.timeInState = 0

	for i := len(current) - 1; i > lca; i-- {
		if err := m.runActions(ctx, m.nodes[current[i]].OnExit, change); err != nil {
			return err
		}
	}
	for i := lca + 1; i < len(targetPath); i++ {
		if err := m.runActions(ctx, m.nodes[targetPath[i]].OnEnter, change); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine[T]) runActions(ctx T, actions []ActionFunc[T], change Change) error {
	for _, fn := range actions {
		if err := fn(ctx, change); err != nil {
			return fmt.Errorf("%s -> %s: %w", m.StateName(change.From), m.StateName(change.To), err)
		}
	}
	return nil
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	change := Change{From: m.activeStateID, To: m.InitialStateID}
	for i := len(m.activePath) - 1; i >= 0; i-- {
		if err := m.runActions(ctx, m.nodes[m.activePath[i]].OnExit, change); err != nil {
			return err
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.InitialStateID)
}
