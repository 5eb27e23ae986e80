package event

import "github.com/lixenwraith/topple/parameter"

// EventQueue is a FIFO buffer for game events
// Thread-Safety: none; producers outside the tick serialize through the world's update lock
// Events pushed while a batch is being dispatched land in the next batch
type EventQueue struct {
	pending []GameEvent
	spare   []GameEvent
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{
		pending: make([]GameEvent, 0, parameter.EventQueueSize),
		spare:   make([]GameEvent, 0, parameter.EventQueueSize),
	}
}

// Push appends an event
func (eq *EventQueue) Push(ev GameEvent) {
	eq.pending = append(eq.pending, ev)
}

// Consume returns all pending events in FIFO order and empties the queue
// The returned slice is only valid until the next Consume
func (eq *EventQueue) Consume() []GameEvent {
	if len(eq.pending) == 0 {
		return nil
	}
	batch := eq.pending
	eq.pending = eq.spare[:0]
	eq.spare = batch
	return batch
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return len(eq.pending)
}
