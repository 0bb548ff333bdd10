package input

import "math"

// Defaults for the slop square and the tap window
const (
	DefaultDragThreshold = 10.0 // Device-independent pixels, per axis
	DefaultTapWindowMs   = 200
)

// Machine is the gesture state machine
// Parses raw pointer samples into semantic Intents; not safe for concurrent use,
// every call must come from the host's event thread
type Machine struct {
	state GestureState

	threshold   float64
	tapWindowMs int64

	start PointerSample // Sample of the pointer-down that opened the gesture

	// last is the base for incremental drag deltas; it stays at start while Pressed
	// so the first DragMove carries the whole slop distance and the sum of deltas
	// always equals the pointer's displacement
	last PointerSample
}

// NewMachine creates a machine with default threshold and tap window
func NewMachine() *Machine {
	return &Machine{
		state:       StateIdle,
		threshold:   DefaultDragThreshold,
		tapWindowMs: DefaultTapWindowMs,
	}
}

// SetThresholds updates the slop and tap window
// Non-positive values keep the current setting
func (m *Machine) SetThresholds(dragThreshold float64, tapWindowMs int64) {
	if dragThreshold > 0 {
		m.threshold = dragThreshold
	}
	if tapWindowMs > 0 {
		m.tapWindowMs = tapWindowMs
	}
}

// State returns the current gesture state
func (m *Machine) State() GestureState {
	return m.state
}

// Reset forces Idle without emitting anything
// Used when the host fails mid-gesture
func (m *Machine) Reset() {
	m.state = StateIdle
	m.start = PointerSample{}
	m.last = PointerSample{}
}

// OnPointerDown opens a gesture
// A down while a gesture is still open discards that gesture silently
func (m *Machine) OnPointerDown(s PointerSample) []Intent {
	m.start = s
	m.last = s
	m.state = StatePressed
	return nil
}

// OnPointerMove classifies a move sample
func (m *Machine) OnPointerMove(s PointerSample) []Intent {
	switch m.state {
	case StatePressed:
		dx := s.X - m.start.X
		dy := s.Y - m.start.Y
		if math.Abs(dx) <= m.threshold && math.Abs(dy) <= m.threshold {
			return nil
		}
		m.state = StateDragging
		move := m.moveIntent(s)
		return []Intent{
			{Type: IntentDragStart, X: s.X, Y: s.Y},
			move,
		}

	case StateDragging:
		return []Intent{m.moveIntent(s)}
	}
	return nil
}

// OnPointerUp closes the gesture, emitting Tap, DragEnd or nothing for a slow press
func (m *Machine) OnPointerUp(s PointerSample) []Intent {
	prev := m.state
	elapsed := s.TimestampMs - m.start.TimestampMs
	m.Reset()

	switch prev {
	case StatePressed:
		if elapsed < m.tapWindowMs {
			return []Intent{{Type: IntentTap, X: s.X, Y: s.Y}}
		}
		// Slow press: neither tap nor drag
		return nil
	case StateDragging:
		return []Intent{{Type: IntentDragEnd, X: s.X, Y: s.Y}}
	}
	return nil
}

// moveIntent builds a DragMove from the previous sample and advances it
func (m *Machine) moveIntent(s PointerSample) Intent {
	in := Intent{
		Type: IntentDragMove,
		DX:   s.X - m.last.X,
		DY:   s.Y - m.last.Y,
		X:    s.X,
		Y:    s.Y,
	}
	m.last = s
	return in
}
