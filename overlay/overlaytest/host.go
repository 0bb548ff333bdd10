// Package overlaytest provides an in-memory WindowHost for tests
package overlaytest

import (
	"errors"

	"github.com/lixenwraith/shotdrop/overlay"
)

// ErrRemoved is returned once the host has been told to fail
var ErrRemoved = errors.New("overlay removed")

// Host records every call a controller makes
type Host struct {
	Width, Height int

	Positions []overlay.TokenPosition
	Redraws   int

	// FailAfter makes RequestRedraw fail once Redraws reaches it; zero disables
	FailAfter int
}

// NewHost creates a host with the given screen size
func NewHost(w, h int) *Host {
	return &Host{Width: w, Height: h}
}

func (h *Host) CurrentScreenSize() (int, int) {
	return h.Width, h.Height
}

func (h *Host) UpdateOverlayPosition(x, y int) error {
	h.Positions = append(h.Positions, overlay.TokenPosition{X: x, Y: y})
	return nil
}

func (h *Host) RequestRedraw() error {
	if h.FailAfter > 0 && h.Redraws >= h.FailAfter {
		return ErrRemoved
	}
	h.Redraws++
	return nil
}

// Last returns the most recent position, or the zero value
func (h *Host) Last() overlay.TokenPosition {
	if len(h.Positions) == 0 {
		return overlay.TokenPosition{}
	}
	return h.Positions[len(h.Positions)-1]
}
