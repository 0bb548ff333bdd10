package overlay

import (
	"fmt"
	"math"

	"github.com/lixenwraith/shotdrop/vmath"
)

// Controller tracks the token position and keeps it on screen
// Not safe for concurrent use; runs on the event loop like everything that mutates it
type Controller struct {
	host WindowHost

	tokenW, tokenH int

	// Logical position kept in float so sub-pixel deltas accumulate without drift
	fx, fy float64

	// offset is a presentation-only shift (magnetic attraction), never folded into fx/fy
	offset   vmath.Vec2
	rendered TokenPosition
}

// NewController creates a controller for a token of the given pixel size
func NewController(host WindowHost, tokenW, tokenH int) *Controller {
	return &Controller{
		host:   host,
		tokenW: max(tokenW, 1),
		tokenH: max(tokenH, 1),
	}
}

// Clamp saturates each axis of pos to [0, screen-token]
// When the token is larger than the screen the axis pins to 0
func Clamp(pos TokenPosition, screenW, screenH, tokenW, tokenH int) TokenPosition {
	return TokenPosition{
		X: vmath.ClampInt(pos.X, 0, screenW-tokenW),
		Y: vmath.ClampInt(pos.Y, 0, screenH-tokenH),
	}
}

// Initialize places the token and notifies the host
func (c *Controller) Initialize(x, y int) error {
	c.fx, c.fy = float64(x), float64(y)
	c.offset = vmath.Vec2{}
	return c.commit()
}

// ApplyDelta moves the token by (dx, dy), clamps it and notifies the host
// The returned position is the logical one, without any presentation offset
func (c *Controller) ApplyDelta(dx, dy float64) (TokenPosition, error) {
	c.fx += dx
	c.fy += dy
	err := c.commit()
	return c.Position(), err
}

// SetX moves the token horizontally, used by the edge-snap animation
func (c *Controller) SetX(x int) error {
	c.fx = float64(x)
	return c.commit()
}

// SetPresentationOffset shifts where the token is drawn without moving it
// Takes effect on the next commit
func (c *Controller) SetPresentationOffset(off vmath.Vec2) {
	c.offset = off
}

// Reclamp re-applies screen bounds, used after a resize
func (c *Controller) Reclamp() error {
	return c.commit()
}

// SetTokenSize changes the token's pixel size; applied on the next commit
func (c *Controller) SetTokenSize(w, h int) {
	c.tokenW, c.tokenH = max(w, 1), max(h, 1)
}

// TokenSize returns the token's pixel size
func (c *Controller) TokenSize() (int, int) {
	return c.tokenW, c.tokenH
}

// Position returns the logical token position
func (c *Controller) Position() TokenPosition {
	return TokenPosition{X: int(math.Round(c.fx)), Y: int(math.Round(c.fy))}
}

// Rendered returns the position last sent to the host
func (c *Controller) Rendered() TokenPosition {
	return c.rendered
}

// Center returns the logical token center
func (c *Controller) Center() vmath.Vec2 {
	return vmath.V(c.fx+float64(c.tokenW)/2, c.fy+float64(c.tokenH)/2)
}

// commit clamps the logical position, then pushes the rendered position and a redraw
func (c *Controller) commit() error {
	sw, sh := c.host.CurrentScreenSize()
	sw, sh = max(sw, 1), max(sh, 1)

	// Saturate the accumulator itself so overshoot never builds up off-screen
	c.fx = vmath.Clamp(c.fx, 0, float64(sw-c.tokenW))
	c.fy = vmath.Clamp(c.fy, 0, float64(sh-c.tokenH))

	shown := c.Position()
	shown.X += int(math.Round(c.offset.X))
	shown.Y += int(math.Round(c.offset.Y))
	c.rendered = Clamp(shown, sw, sh, c.tokenW, c.tokenH)

	if err := c.host.UpdateOverlayPosition(c.rendered.X, c.rendered.Y); err != nil {
		return fmt.Errorf("update overlay position: %w", err)
	}
	if err := c.host.RequestRedraw(); err != nil {
		return fmt.Errorf("request redraw: %w", err)
	}
	return nil
}
