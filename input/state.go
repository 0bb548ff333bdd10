package input

// GestureState tracks the classifier's single-pointer state machine
//
//	Idle --down--> Pressed --move(>T)--> Dragging --up--> Idle
//	Pressed --up(< tap window)--> Idle (Tap)
//	Pressed --up(>= tap window)--> Idle (nothing)
type GestureState uint8

const (
	StateIdle     GestureState = iota // No pointer down
	StatePressed                      // Pointer down, still inside the slop square
	StateDragging                     // Slop exceeded, every move is a drag step
)

// String returns human-readable state name
func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePressed:
		return "Pressed"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// PointerSample is one raw input event from the host
type PointerSample struct {
	X, Y        float64
	TimestampMs int64
}
