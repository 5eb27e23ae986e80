package renderers

import (
	"github.com/lixenwraith/topple/render"
	"github.com/lixenwraith/topple/status"
)

// statusKeys are the metrics shown on the status bar, in order
var statusKeys = []string{
	"session.level",
	"session.phase",
	"hold.count",
	"topple.falling",
	"topple.stopped",
	"topple.fell_out",
	"session.sim_seconds",
	"engine.suspended",
}

// StatusBarRenderer draws the metrics line on the bottom row
type StatusBarRenderer struct {
	reg *status.Registry
}

// NewStatusBarRenderer creates a status bar renderer
func NewStatusBarRenderer(reg *status.Registry) *StatusBarRenderer {
	return &StatusBarRenderer{reg: reg}
}

// Render implements render.SystemRenderer
func (s *StatusBarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	y := ctx.ScreenHeight - 1
	if y < 0 {
		return
	}
	style := render.DefaultStyle.Foreground(render.RgbStatusText).Background(render.RgbStatusBar)
	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.Set(x, y, ' ', style)
	}
	buf.SetString(0, y, " "+s.reg.Line(statusKeys...), style)
}
