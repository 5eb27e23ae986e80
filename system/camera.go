package system

import (
	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
)

// CameraSelector owns the single CameraTarget marker
// Not scheduled; topple and outcome logic call it synchronously
type CameraSelector struct {
	world *engine.World
}

// NewCameraSelector creates the selector over world's CameraTarget store
func NewCameraSelector(world *engine.World) *CameraSelector {
	return &CameraSelector{world: world}
}

// Assign moves the marker to e, removing it from every previous holder first
func (c *CameraSelector) Assign(e core.Entity) {
	store := c.world.Components.CameraTarget
	for _, holder := range store.GetAllEntities() {
		if holder != e {
			store.RemoveEntity(holder)
		}
	}
	if !store.HasEntity(e) {
		store.SetComponent(e, component.CameraTargetComponent{})
		c.world.Resources.Log.Debug("camera target", "entity", e)
	}
}

// Current returns the entity the camera follows
func (c *CameraSelector) Current() (core.Entity, bool) {
	return c.world.Components.CameraTarget.First()
}
