package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background

	RgbBlock = tcell.NewRGBColor(110, 110, 130)

	RgbBrickStanding = tcell.NewRGBColor(230, 230, 230)
	RgbBrickFalling  = tcell.NewRGBColor(255, 200, 0)
	RgbBrickStopped  = tcell.NewRGBColor(90, 170, 90)
	RgbBrickFellOut  = tcell.NewRGBColor(220, 70, 70)
	RgbBrickHeld     = tcell.NewRGBColor(0, 200, 200)
	RgbBrickSpare    = tcell.NewRGBColor(150, 150, 255)

	RgbPlayer       = tcell.NewRGBColor(255, 165, 0)
	RgbCameraMarker = tcell.NewRGBColor(255, 255, 0)

	RgbStatusBar  = tcell.NewRGBColor(135, 206, 250)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbOverlayBg  = tcell.NewRGBColor(128, 0, 128)
	RgbOverlayFg  = tcell.NewRGBColor(255, 255, 255)
)

// DefaultStyle is the empty-cell style
var DefaultStyle = tcell.StyleDefault.Background(RgbBackground)
