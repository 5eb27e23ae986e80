package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/topple/event"
)

// EventRouter dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the tick goroutine
//   - Handlers for one type are invoked in registration order
//   - Every consumed event is delivered even if an earlier handler failed
//
// Usage:
//  1. Create router: NewEventRouter(queue)
//  2. Register handlers: router.Register(system)
//  3. Each tick: router.DispatchAll() before world.Update()
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes pending events and routes them in FIFO order
// Handler errors are joined and returned after the batch is drained
func (r *EventRouter) DispatchAll() error {
	var errs []error
	for _, ev := range r.queue.Consume() {
		for _, h := range r.handlers[ev.Type] {
			if err := h.HandleEvent(ev); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ev.Type, err))
			}
		}
	}
	return errors.Join(errs...)
}
