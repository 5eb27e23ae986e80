package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is never emitted; transitions keyed on it are tick transitions
	EventNone EventType = iota

	// === Input Event ===

	// EventPickPlace is the rising edge of the pick/place input
	// Trigger: input layer, once per press
	// Consumer: PickupSystem | Payload: *PickPlacePayload
	EventPickPlace

	// EventRunAxis updates the player's run axis
	// Trigger: input layer
	// Consumer: PlayerControlSystem | Payload: *RunAxisPayload
	EventRunAxis

	// === Phase Event ===

	// EventStart leaves the main menu and loads the current level
	// Consumer: phase FSM | Payload: nil
	EventStart

	// EventLevelLoaded signals that world and physics were rebuilt
	// Trigger: LoadLevel OnEnter action
	// Consumer: phase FSM | Payload: nil
	EventLevelLoaded

	// EventPauseToggle flips between Playing and Paused
	// Consumer: phase FSM | Payload: nil
	EventPauseToggle

	// EventRestart reloads the current level
	// Consumer: phase FSM | Payload: nil
	EventRestart

	// EventNextLevel advances to the next catalog level after completion
	// Consumer: phase FSM | Payload: nil
	EventNextLevel

	// EventGameOverRequest asks to end gameplay in failure
	// Trigger: OutcomeSystem, PlayerFallSystem
	// Consumer: phase FSM | Payload: nil (reason is already on the session resource)
	EventGameOverRequest

	// EventLevelCompleteRequest asks to end gameplay in success
	// Trigger: OutcomeSystem
	// Consumer: phase FSM | Payload: nil
	EventLevelCompleteRequest

	// === Notification Event ===

	// EventHoldReleased reports that a hold ended
	// Trigger: HoldSystem, PickupSystem
	// Consumer: status counters | Payload: *HoldReleasedPayload
	EventHoldReleased
)

var typeNames = map[EventType]string{
	EventNone:                 "None",
	EventPickPlace:            "PickPlace",
	EventRunAxis:              "RunAxis",
	EventStart:                "Start",
	EventLevelLoaded:          "LevelLoaded",
	EventPauseToggle:          "PauseToggle",
	EventRestart:              "Restart",
	EventNextLevel:            "NextLevel",
	EventGameOverRequest:      "GameOverRequest",
	EventLevelCompleteRequest: "LevelCompleteRequest",
	EventHoldReleased:         "HoldReleased",
}

// String returns the event name used in logs
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
