package engine

import (
	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/vmath"
)

// DragSession exists exactly while the classifier is Dragging
type DragSession struct {
	StartPosition overlay.TokenPosition

	// PointerOffset is the pointer's offset from the token's top-left at press time
	PointerOffset vmath.Vec2

	highlightedID int64
	highlighted   bool
}

// Highlighted returns the zone currently targeted, if any
func (s DragSession) Highlighted() (int64, bool) {
	return s.highlightedID, s.highlighted
}

func (s *DragSession) setHighlight(id int64, ok bool) {
	s.highlightedID, s.highlighted = id, ok
	if !ok {
		s.highlightedID = 0
	}
}
