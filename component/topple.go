package component

import "time"

// ToppleState is the lifecycle of a tracked domino
// Transitions only move forward: Standing -> Falling -> Stopped, or any state -> FellOut
type ToppleState uint8

const (
	ToppleStanding ToppleState = iota
	ToppleFalling
	ToppleStopped
	ToppleFellOut
)

func (s ToppleState) String() string {
	switch s {
	case ToppleStanding:
		return "Standing"
	case ToppleFalling:
		return "Falling"
	case ToppleStopped:
		return "Stopped"
	case ToppleFellOut:
		return "FellOut"
	default:
		return "Unknown"
	}
}

// ToppleComponent tracks whether a domino has been knocked over
type ToppleComponent struct {
	State ToppleState
	// ImmobileTimer counts down while Falling and at rest; reaching zero means Stopped
	ImmobileTimer time.Duration
}
