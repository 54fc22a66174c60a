package core

// Button is a logical controller button, abstracted from physical keys.
// Backends decide which key maps to which button; games only see buttons.
type Button int

// The gameplay buttons come first, followed by the reserved control band.
const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonL
	ButtonR
	ButtonStart
	ButtonSelect

	// Reserved band: consumed by the runtime, never visible to games.
	ButtonF1 // Previous display
	ButtonF2 // Next display
	ButtonF3 // Previous game
	ButtonF4 // Next game
	ButtonF5 // Restart
	ButtonF6 // Back to menu
	ButtonF7 // Exit

	buttonCount
)

// ButtonCount is the number of defined buttons.
const ButtonCount = int(buttonCount)

// ReservedButtons lists the control band in F-key order.
var ReservedButtons = [...]Button{
	ButtonF1, ButtonF2, ButtonF3, ButtonF4, ButtonF5, ButtonF6, ButtonF7,
}

// Reserved reports whether b belongs to the control band.
func (b Button) Reserved() bool {
	return b >= ButtonF1 && b <= ButtonF7
}

// Valid reports whether b is a defined button.
func (b Button) Valid() bool {
	return b >= 0 && b < buttonCount
}

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonX:
		return "X"
	case ButtonY:
		return "Y"
	case ButtonL:
		return "L"
	case ButtonR:
		return "R"
	case ButtonStart:
		return "Start"
	case ButtonSelect:
		return "Select"
	case ButtonF1:
		return "F1"
	case ButtonF2:
		return "F2"
	case ButtonF3:
		return "F3"
	case ButtonF4:
		return "F4"
	case ButtonF5:
		return "F5"
	case ButtonF6:
		return "F6"
	case ButtonF7:
		return "F7"
	default:
		return "Unknown"
	}
}

// ButtonSet is a fixed-size set of buttons, cheap to copy between frames.
type ButtonSet uint32

// Add marks b as a member of the set.
func (s *ButtonSet) Add(b Button) {
	if b.Valid() {
		*s |= 1 << uint(b)
	}
}

// Has reports whether b is a member of the set.
func (s ButtonSet) Has(b Button) bool {
	return b.Valid() && s&(1<<uint(b)) != 0
}

// Clear empties the set.
func (s *ButtonSet) Clear() {
	*s = 0
}

// MouseButton identifies which mouse button produced a release event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
)

// MouseEvent describes a mouse button released during the current frame.
// Type is MouseNone when nothing was released.
type MouseEvent struct {
	Type         MouseButton
	CellPosition Vector2u
}

// Text sentinels carried inside captured text.
const (
	TextBackspace = '\b'
	TextEnter     = '\n'
)
