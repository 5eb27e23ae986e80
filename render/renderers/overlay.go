package renderers

import (
	"unicode/utf8"

	"github.com/lixenwraith/topple/render"
	"github.com/lixenwraith/topple/status"
)

// OverlayRenderer draws a centred banner in every phase except Playing
type OverlayRenderer struct {
	phase  *status.AtomicString
	reason *status.AtomicString
}

// NewOverlayRenderer creates an overlay renderer reading the session's phase metrics
func NewOverlayRenderer(reg *status.Registry) *OverlayRenderer {
	return &OverlayRenderer{
		phase:  reg.Strings.Get("session.phase"),
		reason: reg.Strings.Get("session.reason"),
	}
}

// IsVisible implements render.VisibilityToggle
func (o *OverlayRenderer) IsVisible() bool {
	return o.Banner() != ""
}

// Banner returns the text for the current phase; empty while playing
func (o *OverlayRenderer) Banner() string {
	switch o.phase.Load() {
	case "MainMenu":
		return "TOPPLE  Enter: start  q: quit"
	case "LoadLevel":
		return "loading"
	case "Paused":
		return "PAUSED  p: resume  r: restart"
	case "LevelCompleted":
		return "LEVEL COMPLETE  n: next  r: retry"
	case "GameOver":
		if reason := o.reason.Load(); reason != "" {
			return "GAME OVER: " + reason + "  r: retry"
		}
		return "GAME OVER  r: retry"
	}
	return ""
}

// Render implements render.SystemRenderer
func (o *OverlayRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	text := " " + o.Banner() + " "
	x := (ctx.ScreenWidth - utf8.RuneCountInString(text)) / 2
	y := ctx.ViewportHeight() / 2
	style := render.DefaultStyle.Foreground(render.RgbOverlayFg).Background(render.RgbOverlayBg).Bold(true)
	buf.SetString(max(x, 0), y, text, style)
}
