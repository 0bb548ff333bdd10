package input

// IntentType discriminates semantic gesture actions
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentTap
	IntentDragStart
	IntentDragMove
	IntentDragEnd
)

// String returns human-readable intent name
func (t IntentType) String() string {
	switch t {
	case IntentTap:
		return "Tap"
	case IntentDragStart:
		return "DragStart"
	case IntentDragMove:
		return "DragMove"
	case IntentDragEnd:
		return "DragEnd"
	default:
		return "None"
	}
}

// Intent represents a classified gesture
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type IntentType

	// DX, DY carry the delta since the previous sample for IntentDragMove
	DX, DY float64

	// X, Y is the pointer position of the sample that produced the intent
	X, Y float64
}
