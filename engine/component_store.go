package engine

import (
	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
)

// ComponentStore holds the typed store for every component of the game
// Fields are assigned once in NewWorld and never replaced
type ComponentStore struct {
	// Pickup
	Picker            *Store[component.PickerComponent]
	Pickable          *Store[component.PickableComponent]
	HeldBy            *Store[component.HeldByComponent]
	HeldStatus        *Store[component.HeldStatusComponent]
	InitialCollisions *Store[component.InitialCollisionsComponent]

	// Chain reaction
	Topple       *Store[component.ToppleComponent]
	CameraTarget *Store[component.CameraTargetComponent]

	// Player
	Player   *Store[component.PlayerComponent]
	Facing   *Store[component.FacingComponent]
	RunInput *Store[component.RunInputComponent]

	// Level geometry
	Block *Store[component.BlockComponent]
}

// newComponentStore allocates every store and returns them in lifecycle order
func newComponentStore() (ComponentStore, []AnyStore) {
	cs := ComponentStore{
		Picker:            NewStore[component.PickerComponent](),
		Pickable:          NewStore[component.PickableComponent](),
		HeldBy:            NewStore[component.HeldByComponent](),
		HeldStatus:        NewStore[component.HeldStatusComponent](),
		InitialCollisions: NewStore[component.InitialCollisionsComponent](),

		Topple:       NewStore[component.ToppleComponent](),
		CameraTarget: NewStore[component.CameraTargetComponent](),

		Player:   NewStore[component.PlayerComponent](),
		Facing:   NewStore[component.FacingComponent](),
		RunInput: NewStore[component.RunInputComponent](),

		Block: NewStore[component.BlockComponent](),
	}

	all := []AnyStore{
		cs.Picker, cs.Pickable, cs.HeldBy, cs.HeldStatus, cs.InitialCollisions,
		cs.Topple, cs.CameraTarget,
		cs.Player, cs.Facing, cs.RunInput,
		cs.Block,
	}
	return cs, all
}

// ReleaseHold drops the held-side records of e in one step
// The picker side is left to the caller
func (cs ComponentStore) ReleaseHold(e core.Entity) {
	cs.HeldBy.RemoveEntity(e)
	cs.HeldStatus.RemoveEntity(e)
	cs.InitialCollisions.RemoveEntity(e)
}
