package host

import (
	"math"

	"github.com/lixenwraith/shotdrop/vmath"
)

// Scale maps terminal cells to the engine's pixel space
type Scale struct {
	CellWidth  int
	CellHeight int
}

func (s Scale) normalized() Scale {
	s.CellWidth = max(s.CellWidth, 1)
	s.CellHeight = max(s.CellHeight, 1)
	return s
}

// CellCenter returns the pixel center of cell (cx, cy)
func (s Scale) CellCenter(cx, cy int) vmath.Vec2 {
	s = s.normalized()
	return vmath.V(
		(float64(cx)+0.5)*float64(s.CellWidth),
		(float64(cy)+0.5)*float64(s.CellHeight),
	)
}

// ToCell returns the cell containing pixel p
func (s Scale) ToCell(p vmath.Vec2) (int, int) {
	s = s.normalized()
	return int(math.Floor(p.X / float64(s.CellWidth))), int(math.Floor(p.Y / float64(s.CellHeight)))
}

// Pixels converts a size in cells to pixels
func (s Scale) Pixels(cols, rows int) (int, int) {
	s = s.normalized()
	return cols * s.CellWidth, rows * s.CellHeight
}
