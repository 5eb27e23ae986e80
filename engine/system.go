package engine

import "github.com/lixenwraith/topple/event"

// System is a unit of per-tick game logic
type System interface {
	// Init resets per-level state
	Init()
	// Name is used in logs and error wrapping
	Name() string
	// Priority orders systems; lower values run first
	Priority() int
	// Update advances the system by Resources.Time.DeltaTime
	Update() error
}

// EventHandler receives routed events during the dispatch phase, before World.Update
type EventHandler interface {
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent) error
}
