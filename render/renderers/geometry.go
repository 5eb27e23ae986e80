// Package renderers holds the layers of the terminal view
package renderers

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/render"
)

// BlockRenderer fills cells whose centre lies inside static level geometry
type BlockRenderer struct {
	world *engine.World
	style tcell.Style
}

// NewBlockRenderer creates a block renderer
func NewBlockRenderer(world *engine.World) *BlockRenderer {
	return &BlockRenderer{
		world: world,
		style: render.DefaultStyle.Foreground(render.RgbBlock),
	}
}

// Render implements render.SystemRenderer
func (r *BlockRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	blocks := r.world.Components.Block
	entities := blocks.GetAllEntities()
	if len(entities) == 0 {
		return
	}
	shapes := make([]component.BlockComponent, 0, len(entities))
	for _, e := range entities {
		b, _ := blocks.GetComponent(e)
		shapes = append(shapes, b)
	}

	for y := 0; y < ctx.ViewportHeight(); y++ {
		for x := 0; x < ctx.ScreenWidth; x++ {
			p := ctx.ToWorld(x, y)
			for _, b := range shapes {
				if b.Contains(p) {
					buf.Set(x, y, '█', r.style)
					break
				}
			}
		}
	}
}
