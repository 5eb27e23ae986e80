package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/core"
)

// PickerComponent marks an entity able to pick up Pickable entities
type PickerComponent struct {
	Holding     core.Entity // EntityNone when empty-handed
	Immobilized bool        // Suppresses horizontal running while lifting or placing
}

// Clear resets the picker to its empty state
func (p *PickerComponent) Clear() {
	*p = PickerComponent{}
}

// PickableComponent marks an entity eligible for pickup
type PickableComponent struct {
	// HoldOffset is the grip point relative to the entity origin; it is subtracted from the hold target
	HoldOffset mgl64.Vec2
}

// HeldByComponent points a held entity back at its holder
type HeldByComponent struct {
	Holder core.Entity
}

// HeldPhase is the stage of a hold
type HeldPhase uint8

const (
	// HeldLifted rises above the picker
	HeldLifted HeldPhase = iota
	// HeldCarried tracks the picker
	HeldCarried
	// HeldPlaced descends in front of the picker along Direction
	HeldPlaced
)

func (p HeldPhase) String() string {
	switch p {
	case HeldLifted:
		return "Lifted"
	case HeldCarried:
		return "Carried"
	case HeldPlaced:
		return "Placed"
	default:
		return "Unknown"
	}
}

// HeldStatusComponent is the motion phase of a held entity
type HeldStatusComponent struct {
	Phase     HeldPhase
	Direction mgl64.Vec2 // Unit placement direction, HeldPlaced only
}

// InitialCollisionsComponent is the contact set snapshotted when a hold began
// Contacts present at grasp time are tolerated, any new contact breaks the hold
type InitialCollisionsComponent struct {
	Touching map[core.Entity]bool // Value: still touching this tick
}
