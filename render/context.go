package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/parameter"
)

// CameraSource names the entity the view follows
type CameraSource interface {
	Current() (core.Entity, bool)
}

// RenderContext is the per-frame projection, passed by value
type RenderContext struct {
	// Screen dimensions; the last row is reserved for the status bar
	ScreenWidth  int
	ScreenHeight int

	// Focus is the world point drawn at the viewport centre
	Focus mgl64.Vec2
	// FocusEntity is the camera target; zero when there is none
	FocusEntity core.Entity

	// Scale is cells per world unit on each axis
	Scale mgl64.Vec2
}

// NewRenderContext centres the view on the camera target's body, or the origin without one
func NewRenderContext(world *engine.World, camera CameraSource, width, height int) RenderContext {
	ctx := RenderContext{
		ScreenWidth:  width,
		ScreenHeight: height,
		Scale:        parameter.ViewScale,
	}
	e, ok := camera.Current()
	if !ok || world.Resources.Physics == nil {
		return ctx
	}
	if body, ok := world.Resources.Physics.Body(e); ok {
		ctx.Focus = body.Position
		ctx.FocusEntity = e
	}
	return ctx
}

// ViewportHeight is the number of rows available to the scene
func (c RenderContext) ViewportHeight() int {
	return max(c.ScreenHeight-1, 0)
}

// ToCell projects a world point to a screen cell; y grows downward on screen
func (c RenderContext) ToCell(p mgl64.Vec2) (int, int) {
	d := p.Sub(c.Focus)
	x := c.ScreenWidth/2 + int(math.Round(d[0]*c.Scale[0]))
	y := c.ViewportHeight()/2 - int(math.Round(d[1]*c.Scale[1]))
	return x, y
}

// ToWorld returns the world point at the centre of a screen cell
func (c RenderContext) ToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		c.Focus[0] + float64(x-c.ScreenWidth/2)/c.Scale[0],
		c.Focus[1] - float64(y-c.ViewportHeight()/2)/c.Scale[1],
	}
}

// InViewport reports whether a cell lies in the scene area
func (c RenderContext) InViewport(x, y int) bool {
	return x >= 0 && x < c.ScreenWidth && y >= 0 && y < c.ViewportHeight()
}
