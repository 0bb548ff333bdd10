package host

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/vmath"
	"github.com/lixenwraith/shotdrop/zone"
)

// Scene is everything drawn in one frame, in engine pixels
type Scene struct {
	Zones  []zone.DropZone
	Labels []string // Parallel to Zones

	Token       overlay.TokenPosition
	TokenWidth  int
	TokenHeight int
	TokenLabel  string
	Dragging    bool
	Empty       bool // No capture waiting to be filed

	Status string
}

const (
	petalRune = '░'
	hotRune   = '▓'
	tokenRune = '█'
)

// Draw renders scene onto screen; the last row is the status line
func Draw(screen tcell.Screen, scene Scene, scale Scale) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	screen.SetStyle(bg)
	screen.Clear()

	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	for i, z := range scene.Zones {
		drawZone(screen, z, scale, cols, rows-1)
		if i < len(scene.Labels) {
			cx, cy := scale.ToCell(z.Center())
			label := scene.Labels[i]
			drawText(screen, cx-len([]rune(label))/2, cy, label, cols, rows-1,
				tcell.StyleDefault.Foreground(RgbZoneLabel).Background(zoneColor(z)).Bold(z.IsHighlighted))
		}
	}

	drawToken(screen, scene, scale, cols, rows-1)

	status := tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBg)
	for x := 0; x < cols; x++ {
		screen.SetContent(x, rows-1, ' ', nil, status)
	}
	drawText(screen, 1, rows-1, scene.Status, cols, rows, status)
}

func zoneColor(z zone.DropZone) tcell.Color {
	if z.IsHighlighted {
		return RgbZoneHighlight
	}
	return RgbZoneFill
}

// drawZone fills every cell whose center lies inside the petal outline
func drawZone(screen tcell.Screen, z zone.DropZone, scale Scale, cols, rows int) {
	outline := z.Outline()
	lo, hi := vmath.Bounds(outline)
	x0, y0 := scale.ToCell(lo)
	x1, y1 := scale.ToCell(hi)

	r := petalRune
	if z.IsHighlighted {
		r = hotRune
	}
	style := tcell.StyleDefault.Foreground(zoneColor(z)).Background(RgbBackground)

	for cy := max(y0, 0); cy <= min(y1, rows-1); cy++ {
		for cx := max(x0, 0); cx <= min(x1, cols-1); cx++ {
			if vmath.PolygonContains(outline, scale.CellCenter(cx, cy)) {
				screen.SetContent(cx, cy, r, nil, style)
			}
		}
	}
}

func drawToken(screen tcell.Screen, scene Scene, scale Scale, cols, rows int) {
	s := scale.normalized()
	x0 := int(math.Floor(float64(scene.Token.X) / float64(s.CellWidth)))
	y0 := int(math.Floor(float64(scene.Token.Y) / float64(s.CellHeight)))
	x1 := int(math.Ceil(float64(scene.Token.X+scene.TokenWidth)/float64(s.CellWidth))) - 1
	y1 := int(math.Ceil(float64(scene.Token.Y+scene.TokenHeight)/float64(s.CellHeight))) - 1

	color := RgbTokenIdle
	switch {
	case scene.Dragging:
		color = RgbTokenDragging
	case scene.Empty:
		color = RgbTokenEmpty
	}
	style := tcell.StyleDefault.Foreground(color).Background(RgbBackground)

	for cy := max(y0, 0); cy <= min(y1, rows-1); cy++ {
		for cx := max(x0, 0); cx <= min(x1, cols-1); cx++ {
			screen.SetContent(cx, cy, tokenRune, nil, style)
		}
	}
	if scene.TokenLabel != "" {
		label := []rune(scene.TokenLabel)
		w := x1 - x0 + 1
		if len(label) > w {
			label = label[:max(w, 0)]
		}
		tx := x0 + (w-len(label))/2
		drawText(screen, tx, (y0+y1)/2, string(label), cols, rows,
			tcell.StyleDefault.Foreground(RgbStatusText).Background(color))
	}
}

func drawText(screen tcell.Screen, x, y int, text string, cols, rows int, style tcell.Style) {
	if y < 0 || y >= rows {
		return
	}
	for _, r := range text {
		if x >= cols {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
