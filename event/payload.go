package event

import "github.com/lixenwraith/topple/core"

// PickPlacePayload carries the picker whose pick/place input fired
type PickPlacePayload struct {
	Picker core.Entity
}

// RunAxisPayload carries a new run axis value for a player
type RunAxisPayload struct {
	Player core.Entity
	Axis   float64
}

// ReleaseCause says why a hold ended
type ReleaseCause uint8

const (
	ReleasePlaced ReleaseCause = iota
	ReleaseCollision
	ReleaseDesync
	ReleaseHolderLost
)

// String returns the cause name used in logs
func (c ReleaseCause) String() string {
	switch c {
	case ReleasePlaced:
		return "placed"
	case ReleaseCollision:
		return "collision"
	case ReleaseDesync:
		return "desync"
	case ReleaseHolderLost:
		return "holder_lost"
	}
	return "unknown"
}

// HoldReleasedPayload reports a finished hold
type HoldReleasedPayload struct {
	Picker core.Entity
	Held   core.Entity
	Cause  ReleaseCause
}
