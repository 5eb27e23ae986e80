package renderers

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/render"
	"github.com/lixenwraith/topple/vmath"
)

// BrickRenderer draws every toppleable piece as a line along its long axis
// Color encodes topple state; standing spares and held pieces override it
type BrickRenderer struct {
	world *engine.World
}

// NewBrickRenderer creates a brick renderer
func NewBrickRenderer(world *engine.World) *BrickRenderer {
	return &BrickRenderer{world: world}
}

// Render implements render.SystemRenderer
func (r *BrickRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	phys := r.world.Resources.Physics
	if phys == nil {
		return
	}
	cs := r.world.Components

	for _, e := range cs.Topple.GetAllEntities() {
		body, ok := phys.Body(e)
		if !ok {
			continue
		}
		t, _ := cs.Topple.GetComponent(e)
		style := render.DefaultStyle.Foreground(StateColor(t.State))
		if t.State == component.ToppleStanding && cs.Pickable.HasEntity(e) {
			style = render.DefaultStyle.Foreground(render.RgbBrickSpare)
		}
		if cs.HeldBy.HasEntity(e) {
			style = render.DefaultStyle.Foreground(render.RgbBrickHeld)
		}
		if e == ctx.FocusEntity {
			style = style.Bold(true)
		}

		glyph := AxisGlyph(body.Angle)
		axis := vmath.Rotate(vmath.Up, body.Angle)
		half := parameter.BrickHeight / 2
		// Half-cell sampling along the axis leaves no gaps at any angle
		samples := int(math.Ceil(parameter.BrickHeight*max(ctx.Scale[0], ctx.Scale[1])*2)) + 1
		for i := 0; i < samples; i++ {
			s := -half + parameter.BrickHeight*float64(i)/float64(samples-1)
			x, y := ctx.ToCell(body.Position.Add(axis.Mul(s)))
			if ctx.InViewport(x, y) {
				buf.Set(x, y, glyph, style)
			}
		}
	}
}

// StateColor maps a topple state to its color
func StateColor(s component.ToppleState) tcell.Color {
	switch s {
	case component.ToppleFalling:
		return render.RgbBrickFalling
	case component.ToppleStopped:
		return render.RgbBrickStopped
	case component.ToppleFellOut:
		return render.RgbBrickFellOut
	default:
		return render.RgbBrickStanding
	}
}

// AxisGlyph picks the line character closest to a body's long axis at angle
func AxisGlyph(angle float64) rune {
	a := vmath.WrapAngle(angle)
	// The axis is symmetric under half turns
	if a > math.Pi/2 {
		a -= math.Pi
	} else if a < -math.Pi/2 {
		a += math.Pi
	}
	switch {
	case math.Abs(a) < math.Pi/8:
		return '|'
	case math.Abs(a) > 3*math.Pi/8:
		return '─'
	case a > 0:
		// Counter-clockwise tilt leans the top to the left
		return '\\'
	default:
		return '/'
	}
}
