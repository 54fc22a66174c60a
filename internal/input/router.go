package input

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Source is the input half of a display backend.
type Source interface {
	IsButtonJustPressed(b core.Button) bool
	IsButtonHeld(b core.Button) bool
	ReleasedMouseEvent() core.MouseEvent
	IsClosing() bool

	StartTextCapture()
	ReadCapturedText() string
	EndTextCapture()
}

// Router sits between the active display and the game. It is confined to the
// loop goroutine.
type Router struct {
	src Source

	capturing bool
	buffer    strings.Builder

	mouse        core.MouseEvent
	mouseClaimed bool
}

// NewRouter creates a router reading from src.
func NewRouter(src Source) *Router {
	return &Router{src: src}
}

// Bind switches the router to a new display. Text capture carries over: the
// new display is put into capture mode when the game was capturing.
func (r *Router) Bind(src Source) {
	r.src = src
	r.mouse = core.MouseEvent{}
	r.mouseClaimed = true
	if r.capturing {
		src.StartTextCapture()
	}
}

// BeginFrame samples the display once for the frame that is about to run and
// returns the control event with the highest priority, or ControlNone.
func (r *Router) BeginFrame() ControlEvent {
	r.mouse = r.src.ReleasedMouseEvent()
	r.mouseClaimed = r.mouse.Type == core.MouseNone

	if r.capturing {
		r.buffer.WriteString(r.src.ReadCapturedText())
	}

	if r.src.IsClosing() {
		return Exit
	}
	for i := len(core.ReservedButtons) - 1; i >= 0; i-- {
		b := core.ReservedButtons[i]
		if r.src.IsButtonJustPressed(b) {
			return ControlFor(b)
		}
	}
	return ControlNone
}

// IsButtonJustPressed reports a gameplay button press. Reserved buttons are
// never reported.
func (r *Router) IsButtonJustPressed(b core.Button) bool {
	if b.Reserved() || !b.Valid() {
		return false
	}
	return r.src.IsButtonJustPressed(b)
}

// IsButtonHeld reports a held gameplay button. Reserved buttons are never
// reported.
func (r *Router) IsButtonHeld(b core.Button) bool {
	if b.Reserved() || !b.Valid() {
		return false
	}
	return r.src.IsButtonHeld(b)
}

// ReleasedMouseEvent returns this frame's mouse release the first time it is
// asked for and a MouseNone event afterwards.
func (r *Router) ReleasedMouseEvent() core.MouseEvent {
	if r.mouseClaimed {
		return core.MouseEvent{}
	}
	r.mouseClaimed = true
	return r.mouse
}

// Capturing reports whether text capture is on.
func (r *Router) Capturing() bool {
	return r.capturing
}

// StartTextInput enters capture mode.
func (r *Router) StartTextInput() error {
	if r.capturing {
		return fmt.Errorf("input: start text input: %w", core.ErrAlreadyCapturing)
	}
	r.capturing = true
	r.buffer.Reset()
	r.src.StartTextCapture()
	return nil
}

// TextInput returns the text typed since the previous call. Backspace and
// enter arrive in the text as core.TextBackspace and core.TextEnter.
func (r *Router) TextInput() (string, error) {
	if !r.capturing {
		return "", fmt.Errorf("input: text input: %w", core.ErrNotCapturing)
	}
	r.buffer.WriteString(r.src.ReadCapturedText())
	text := r.buffer.String()
	r.buffer.Reset()
	return text, nil
}

// EndTextInput leaves capture mode and drops unread text.
func (r *Router) EndTextInput() error {
	if !r.capturing {
		return fmt.Errorf("input: end text input: %w", core.ErrNotCapturing)
	}
	r.capturing = false
	r.buffer.Reset()
	r.src.EndTextCapture()
	return nil
}
