// Package overlay owns the token's screen position and pushes every change to the window host
package overlay

// WindowHost is the window system collaborator that displays the token
// It is injected at construction and must stay valid for the duration of a drag
type WindowHost interface {
	// CurrentScreenSize returns the drawable area in pixels
	CurrentScreenSize() (width, height int)

	// UpdateOverlayPosition moves the token's top-left corner
	UpdateOverlayPosition(x, y int) error

	// RequestRedraw asks for a new frame; an error means the overlay is gone
	RequestRedraw() error
}

// TokenPosition is the token's top-left corner in screen pixels
type TokenPosition struct {
	X, Y int
}
