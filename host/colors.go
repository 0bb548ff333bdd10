package host

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground    = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbZoneFill      = tcell.NewRGBColor(60, 100, 200)  // Idle zone petals
	RgbZoneHighlight = tcell.NewRGBColor(140, 190, 255) // Targeted zone petals
	RgbZoneLabel     = tcell.NewRGBColor(255, 255, 255)
	RgbTokenIdle     = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbTokenDragging = tcell.NewRGBColor(255, 255, 0) // Bright yellow
	RgbTokenEmpty    = tcell.NewRGBColor(100, 100, 100)
	RgbStatusBg      = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText    = tcell.NewRGBColor(0, 0, 0)
)
