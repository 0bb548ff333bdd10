package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shotdrop/input"
)

// PointerKind is the pointer phase a mouse event maps to
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// MouseTracker turns tcell's button-state reports into pointer phases
// tcell reports held buttons, not transitions, so the tracker remembers Button1
type MouseTracker struct {
	scale Scale
	down  bool
	stamp func(*tcell.EventMouse) int64
}

// NewMouseTracker creates a tracker using scale for cell to pixel mapping
func NewMouseTracker(scale Scale) *MouseTracker {
	return &MouseTracker{scale: scale, stamp: eventMillis}
}

// eventMillis is the event's own creation time
func eventMillis(ev *tcell.EventMouse) int64 { return ev.When().UnixMilli() }

// SetTimestampSource replaces how samples are stamped; nil restores event time
func (m *MouseTracker) SetTimestampSource(fn func(*tcell.EventMouse) int64) {
	if fn == nil {
		fn = eventMillis
	}
	m.stamp = fn
}

// Translate maps one mouse event; ok is false for hover and other buttons
func (m *MouseTracker) Translate(ev *tcell.EventMouse) (PointerKind, input.PointerSample, bool) {
	cx, cy := ev.Position()
	p := m.scale.CellCenter(cx, cy)
	sample := input.PointerSample{X: p.X, Y: p.Y, TimestampMs: m.stamp(ev)}
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !m.down:
		m.down = true
		return PointerDown, sample, true
	case held:
		return PointerMove, sample, true
	case m.down:
		m.down = false
		return PointerUp, sample, true
	}
	return 0, sample, false
}

// Down reports whether Button1 is held
func (m *MouseTracker) Down() bool { return m.down }

// Reset forgets a held button, e.g. after focus loss
func (m *MouseTracker) Reset() { m.down = false }
