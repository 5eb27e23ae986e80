// Package input turns terminal key events into gameplay intents and queues them as game events
package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // Ctrl+Q, Ctrl+C, q
	IntentResize // Terminal resize event

	// Gameplay
	IntentRun       // Arrows, a/d; carries Axis
	IntentStop      // Down arrow, s, or run key timeout
	IntentPickPlace // Space, e

	// Phase control
	IntentStart     // Enter
	IntentPause     // p, Esc
	IntentRestart   // r
	IntentNextLevel // n
)

var intentNames = map[IntentType]string{
	IntentNone:      "None",
	IntentQuit:      "Quit",
	IntentResize:    "Resize",
	IntentRun:       "Run",
	IntentStop:      "Stop",
	IntentPickPlace: "PickPlace",
	IntentStart:     "Start",
	IntentPause:     "Pause",
	IntentRestart:   "Restart",
	IntentNextLevel: "NextLevel",
}

// String returns the intent name used in logs
func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Intent is one parsed user action
type Intent struct {
	Type IntentType
	// Axis is the run direction in [-1, 1], set for IntentRun and IntentStop
	Axis float64
}
