package cells

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// HoldFrames is how long a key counts as held after its last press or repeat.
// Terminals report no key releases, so held state has to be inferred.
const HoldFrames = 4

// Input accumulates one frame of terminal input.
type Input struct {
	pressed core.ButtonSet
	held    [core.ButtonCount]int

	mouse   core.MouseEvent
	closing bool

	capturing bool
	text      strings.Builder
}

// EndFrame forgets this frame's presses and ages held keys. Backends call it
// before reading new events.
func (in *Input) EndFrame() {
	in.pressed.Clear()
	for i := range in.held {
		if in.held[i] > 0 {
			in.held[i]--
		}
	}
}

// Key records a key event by name. r is the typed character, or 0 for keys
// that type nothing.
//
// While capturing, printable characters, backspace and return go into the
// captured text and press no button; other keys (the F-keys among them)
// still do.
func (in *Input) Key(name string, r rune) {
	if IsQuitKey(name) {
		in.closing = true
		return
	}
	if in.capturing {
		switch {
		case name == "backspace":
			in.text.WriteRune(core.TextBackspace)
			return
		case name == "enter":
			in.text.WriteRune(core.TextEnter)
			return
		case r != 0 && unicode.IsPrint(r):
			in.text.WriteRune(r)
			return
		}
	}
	if b, ok := ButtonForKey(name); ok {
		in.Press(b)
	}
}

// Press marks b as pressed this frame.
func (in *Input) Press(b core.Button) {
	if !b.Valid() {
		return
	}
	in.pressed.Add(b)
	in.held[b] = HoldFrames
}

// MouseRelease records a released mouse button over a cell. A later release
// in the same frame replaces it.
func (in *Input) MouseRelease(b core.MouseButton, cell core.Vector2u) {
	in.mouse = core.MouseEvent{Type: b, CellPosition: cell}
}

// SetClosing records that the terminal asked to close.
func (in *Input) SetClosing() {
	in.closing = true
}

func (in *Input) JustPressed(b core.Button) bool {
	return b.Valid() && in.pressed.Has(b)
}

func (in *Input) Held(b core.Button) bool {
	return b.Valid() && in.held[b] > 0
}

// ReleasedMouse returns the pending mouse release once.
func (in *Input) ReleasedMouse() core.MouseEvent {
	ev := in.mouse
	in.mouse = core.MouseEvent{}
	return ev
}

func (in *Input) Closing() bool {
	return in.closing
}

// StartCapture turns text capture on with an empty buffer.
func (in *Input) StartCapture() {
	in.capturing = true
	in.text.Reset()
}

// EndCapture turns text capture off and drops unread text.
func (in *Input) EndCapture() {
	in.capturing = false
	in.text.Reset()
}

// ReadText returns and clears the captured text.
func (in *Input) ReadText() string {
	s := in.text.String()
	in.text.Reset()
	return s
}
