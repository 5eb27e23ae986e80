package renderers

import (
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/render"
)

// RegisterDefaults adds every game layer to o in draw order
func RegisterDefaults(o *render.RenderOrchestrator, world *engine.World) {
	reg := world.Resources.Status
	o.Register(NewBlockRenderer(world), render.PriorityGeometry)
	o.Register(NewBrickRenderer(world), render.PriorityEntities)
	o.Register(NewPlayerRenderer(world), render.PriorityPlayer)
	o.Register(NewStatusBarRenderer(reg), render.PriorityUI)
	o.Register(NewOverlayRenderer(reg), render.PriorityOverlay)
}
