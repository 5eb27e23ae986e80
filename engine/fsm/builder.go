package fsm

import "fmt"

// AddState adds a node; parentID StateNone makes it top level
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition adds a transition to sourceID
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) error {
	node, ok := m.nodes[sourceID]
	if !ok {
		return fmt.Errorf("transition from unknown state %d", sourceID)
	}
	node.Transitions = append(node.Transitions, t)
	return nil
}

// OnEnter appends an enter action to id
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("enter action on unknown state %d", id)
	}
	node.OnEnter = append(node.OnEnter, fn)
	return nil
}

// OnExit appends an exit action to id
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) error {
	node, ok := m.nodes[id]
	if !ok {
		return fmt.Errorf("exit action on unknown state %d", id)
	}
	node.OnExit = append(node.OnExit, fn)
	return nil
}

// CompilePaths calculates Path for every node and validates transition targets
// Must be called after the graph is built and before Init
func (m *Machine[T]) CompilePaths() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to the top level
		for {
			path = append(path, curr.ID)
			if len(path) > len(m.nodes) {
				return fmt.Errorf("state %d has a parent cycle", id)
			}
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("state %d references missing parent %d", curr.ID, curr.ParentID)
			}
			curr = parent
		}

		// Reverse to [Top, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		node.Path = path

		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %d transitions to missing state %d", id, t.TargetID)
			}
		}
	}
	m.compiled = true
	return nil
}
