package input

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

type fakeSource struct {
	pressed   core.ButtonSet
	held      core.ButtonSet
	mouse     core.MouseEvent
	closing   bool
	capturing bool
	pending   string
	starts    int
}

func (s *fakeSource) IsButtonJustPressed(b core.Button) bool { return s.pressed.Has(b) }
func (s *fakeSource) IsButtonHeld(b core.Button) bool        { return s.held.Has(b) }
func (s *fakeSource) IsClosing() bool                        { return s.closing }

func (s *fakeSource) ReleasedMouseEvent() core.MouseEvent {
	ev := s.mouse
	s.mouse = core.MouseEvent{}
	return ev
}

func (s *fakeSource) StartTextCapture() {
	s.capturing = true
	s.starts++
}

func (s *fakeSource) ReadCapturedText() string {
	text := s.pending
	s.pending = ""
	return text
}

func (s *fakeSource) EndTextCapture() { s.capturing = false }

func press(buttons ...core.Button) *fakeSource {
	s := &fakeSource{}
	for _, b := range buttons {
		s.pressed.Add(b)
		s.held.Add(b)
	}
	return s
}

func TestReservedButtonsNeverReachGame(t *testing.T) {
	for _, b := range core.ReservedButtons {
		src := press(b)
		r := NewRouter(src)
		r.BeginFrame()
		if r.IsButtonJustPressed(b) {
			t.Errorf("IsButtonJustPressed(%s) = true, expected false", b)
		}
		if r.IsButtonHeld(b) {
			t.Errorf("IsButtonHeld(%s) = true, expected false", b)
		}
	}
}

func TestGameplayButtonsPassThrough(t *testing.T) {
	r := NewRouter(press(core.ButtonA, core.ButtonLeft))
	if ev := r.BeginFrame(); ev != ControlNone {
		t.Errorf("BeginFrame() = %s, expected none", ev)
	}
	if !r.IsButtonJustPressed(core.ButtonA) || !r.IsButtonHeld(core.ButtonLeft) {
		t.Error("gameplay buttons should reach the game")
	}
	if r.IsButtonJustPressed(core.ButtonB) {
		t.Error("IsButtonJustPressed(B) = true, expected false")
	}
}

func TestControlPriority(t *testing.T) {
	tests := []struct {
		name     string
		pressed  []core.Button
		expected ControlEvent
	}{
		{"single f1", []core.Button{core.ButtonF1}, PreviousDisplay},
		{"single f2", []core.Button{core.ButtonF2}, NextDisplay},
		{"exit beats everything", []core.Button{core.ButtonF1, core.ButtonF5, core.ButtonF7}, Exit},
		{"menu beats restart", []core.Button{core.ButtonF5, core.ButtonF6}, ReturnToMenu},
		{"restart beats next game", []core.Button{core.ButtonF4, core.ButtonF5}, Restart},
		{"next game beats previous game", []core.Button{core.ButtonF3, core.ButtonF4}, NextGame},
		{"previous game beats displays", []core.Button{core.ButtonF1, core.ButtonF2, core.ButtonF3}, PreviousGame},
		{"next display beats previous display", []core.Button{core.ButtonF1, core.ButtonF2}, NextDisplay},
		{"gameplay only", []core.Button{core.ButtonStart}, ControlNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRouter(press(tc.pressed...))
			if got := r.BeginFrame(); got != tc.expected {
				t.Errorf("BeginFrame() = %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestClosingIsExit(t *testing.T) {
	src := press(core.ButtonF2)
	src.closing = true
	if got := NewRouter(src).BeginFrame(); got != Exit {
		t.Errorf("BeginFrame() = %s, expected exit", got)
	}
}

func TestMouseReleaseClaimedOnce(t *testing.T) {
	src := &fakeSource{mouse: core.MouseEvent{Type: core.MouseLeft, CellPosition: core.Vector2u{X: 3, Y: 4}}}
	r := NewRouter(src)
	r.BeginFrame()

	first := r.ReleasedMouseEvent()
	if first.Type != core.MouseLeft || first.CellPosition != (core.Vector2u{X: 3, Y: 4}) {
		t.Errorf("first ReleasedMouseEvent() = %+v", first)
	}
	if second := r.ReleasedMouseEvent(); second.Type != core.MouseNone {
		t.Errorf("second ReleasedMouseEvent() = %+v, expected none", second)
	}

	r.BeginFrame()
	if ev := r.ReleasedMouseEvent(); ev.Type != core.MouseNone {
		t.Errorf("next frame ReleasedMouseEvent() = %+v, expected none", ev)
	}
}

func TestTextCaptureStateMachine(t *testing.T) {
	src := &fakeSource{}
	r := NewRouter(src)

	if _, err := r.TextInput(); !errors.Is(err, core.ErrNotCapturing) {
		t.Errorf("TextInput() before start = %v, expected ErrNotCapturing", err)
	}
	if err := r.EndTextInput(); !errors.Is(err, core.ErrNotCapturing) {
		t.Errorf("EndTextInput() before start = %v, expected ErrNotCapturing", err)
	}

	if err := r.StartTextInput(); err != nil {
		t.Fatalf("StartTextInput() error: %v", err)
	}
	if err := r.StartTextInput(); !errors.Is(err, core.ErrAlreadyCapturing) {
		t.Errorf("second StartTextInput() = %v, expected ErrAlreadyCapturing", err)
	}
	if !src.capturing {
		t.Error("backend should be capturing")
	}

	src.pending = "ab"
	r.BeginFrame()
	src.pending = "c\b\n"
	text, err := r.TextInput()
	if err != nil {
		t.Fatalf("TextInput() error: %v", err)
	}
	if text != "abc\b\n" {
		t.Errorf("TextInput() = %q, expected %q", text, "abc\b\n")
	}
	if text, _ := r.TextInput(); text != "" {
		t.Errorf("TextInput() after drain = %q, expected empty", text)
	}

	if err := r.EndTextInput(); err != nil {
		t.Fatalf("EndTextInput() error: %v", err)
	}
	if src.capturing || r.Capturing() {
		t.Error("capture should be off after EndTextInput")
	}
	if err := r.StartTextInput(); err != nil {
		t.Errorf("StartTextInput() after end = %v", err)
	}
}

func TestBindCarriesCapture(t *testing.T) {
	old := &fakeSource{}
	r := NewRouter(old)
	if err := r.StartTextInput(); err != nil {
		t.Fatal(err)
	}

	next := &fakeSource{}
	r.Bind(next)
	if !next.capturing || next.starts != 1 {
		t.Errorf("new backend capturing = %v (starts %d), expected true (1)", next.capturing, next.starts)
	}

	idle := &fakeSource{}
	_ = r.EndTextInput()
	r.Bind(idle)
	if idle.capturing {
		t.Error("idle router should not start capture on bind")
	}
}

func TestControlFor(t *testing.T) {
	if ControlFor(core.ButtonA) != ControlNone {
		t.Error("gameplay button should not map to a control event")
	}
	if ControlFor(core.ButtonF6) != ReturnToMenu {
		t.Errorf("ControlFor(F6) = %s, expected menu", ControlFor(core.ButtonF6))
	}
}
