package input

import (
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/event"
)

// Pusher queues a game event for the next tick
// game.Session implements it
type Pusher interface {
	Push(t event.EventType, payload any)
}

// Router forwards intents to the game as events
type Router struct {
	pusher Pusher
	player func() core.Entity
}

// NewRouter creates a router; player resolves the handle of the current player
func NewRouter(pusher Pusher, player func() core.Entity) *Router {
	return &Router{pusher: pusher, player: player}
}

// Apply forwards one intent and returns false when the application should exit
func (r *Router) Apply(in Intent) bool {
	switch in.Type {
	case IntentQuit:
		return false
	case IntentRun, IntentStop:
		if p := r.player(); p != 0 {
			r.pusher.Push(event.EventRunAxis, &event.RunAxisPayload{Player: p, Axis: in.Axis})
		}
	case IntentPickPlace:
		if p := r.player(); p != 0 {
			r.pusher.Push(event.EventPickPlace, &event.PickPlacePayload{Picker: p})
		}
	case IntentStart:
		r.pusher.Push(event.EventStart, nil)
	case IntentPause:
		r.pusher.Push(event.EventPauseToggle, nil)
	case IntentRestart:
		r.pusher.Push(event.EventRestart, nil)
	case IntentNextLevel:
		r.pusher.Push(event.EventNextLevel, nil)
	}
	return true
}
