package renderers

import (
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/render"
)

// PlayerRenderer draws players with a facing marker beside them
type PlayerRenderer struct {
	world *engine.World
}

// NewPlayerRenderer creates a player renderer
func NewPlayerRenderer(world *engine.World) *PlayerRenderer {
	return &PlayerRenderer{world: world}
}

// Render implements render.SystemRenderer
func (r *PlayerRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	phys := r.world.Resources.Physics
	if phys == nil {
		return
	}
	cs := r.world.Components
	style := render.DefaultStyle.Foreground(render.RgbPlayer)

	for _, e := range cs.Player.GetAllEntities() {
		body, ok := phys.Body(e)
		if !ok {
			continue
		}
		x, y := ctx.ToCell(body.Position)
		if !ctx.InViewport(x, y) {
			continue
		}
		s := style
		if picker, ok := cs.Picker.GetComponent(e); ok && picker.Immobilized {
			s = s.Reverse(true)
		}
		buf.Set(x, y, '@', s)

		if facing, ok := cs.Facing.GetComponent(e); ok {
			if facing.Direction[0] < 0 {
				buf.Set(x-1, y, '<', style)
			} else {
				buf.Set(x+1, y, '>', style)
			}
		}
	}
}
