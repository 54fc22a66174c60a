package tcellterm

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

func newSimDisplay(t *testing.T) (*Display, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	d := New(func() (tcell.Screen, error) { return sim, nil })
	t.Cleanup(func() { d.Close() })
	return d, sim
}

func TestDisplayTakesTerminalLazily(t *testing.T) {
	calls := 0
	d := New(func() (tcell.Screen, error) {
		calls++
		return tcell.NewSimulationScreen("UTF-8"), nil
	})
	defer d.Close()

	d.SetCellPixelSize(16)
	if err := d.OpenWindow(core.Vector2u{X: 160, Y: 160}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.LoadTexture(core.Recipe{Character: 'x'}); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("screen created %d times before the first frame", calls)
	}

	d.PollEvents()
	d.PollEvents()
	if calls != 1 {
		t.Errorf("screen created %d times, expected 1", calls)
	}
}

func TestDisplayPresentsSprites(t *testing.T) {
	d, sim := newSimDisplay(t)
	d.SetCellPixelSize(8)
	d.OpenWindow(core.Vector2u{X: 80, Y: 40})
	d.PollEvents()
	sim.SetSize(20, 10)

	raw, err := d.LoadTexture(core.Recipe{Character: '@', Foreground: core.ColorRed, Background: core.ColorBlue, Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	d.Clear(core.ColorBlack)
	d.DrawSprite(core.Sprite{Position: core.Vector2u{X: 16, Y: 8}, Texture: raw})
	if err := d.Present(); err != nil {
		t.Fatalf("Present() error: %v", err)
	}

	mainc, _, st, _ := sim.GetContent(2, 1)
	if mainc != '@' {
		t.Errorf("cell (2,1) = %q, expected '@'", mainc)
	}
	fg, bg, _ := st.Decompose()
	if fg != tcell.PaletteColor(int(core.ColorRed)) || bg != tcell.PaletteColor(int(core.ColorBlue)) {
		t.Errorf("style = %v on %v", fg, bg)
	}
}

func TestDisplayKeys(t *testing.T) {
	d, _ := newSimDisplay(t)
	d.PollEvents()

	d.handle(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift))
	d.handle(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))

	if !d.IsButtonJustPressed(core.ButtonUp) {
		t.Error("W should press Up")
	}
	if !d.IsButtonJustPressed(core.ButtonF5) {
		t.Error("F5 should press F5")
	}

	d.PollEvents()
	if d.IsButtonJustPressed(core.ButtonF5) {
		t.Error("press survived PollEvents")
	}

	d.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if !d.IsClosing() {
		t.Error("ctrl+c should close")
	}
}

func TestDisplayTextCapture(t *testing.T) {
	d, _ := newSimDisplay(t)
	d.PollEvents()
	d.StartTextCapture()

	d.handle(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	d.handle(tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone))
	d.handle(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	d.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if got := d.ReadCapturedText(); got != "hi\b\n" {
		t.Errorf("ReadCapturedText() = %q, expected %q", got, "hi\b\n")
	}
	if d.IsButtonJustPressed(core.ButtonStart) {
		t.Error("enter pressed Start while capturing")
	}
}

func TestDisplayMouseRelease(t *testing.T) {
	d, _ := newSimDisplay(t)
	d.PollEvents()

	d.handle(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	if ev := d.ReleasedMouseEvent(); ev.Type != core.MouseNone {
		t.Fatalf("press reported as release: %+v", ev)
	}
	d.handle(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone))

	ev := d.ReleasedMouseEvent()
	if ev.Type != core.MouseLeft || ev.CellPosition != (core.Vector2u{X: 5, Y: 3}) {
		t.Errorf("ReleasedMouseEvent() = %+v", ev)
	}
}

func TestDisplayInitFailureCloses(t *testing.T) {
	d := New(func() (tcell.Screen, error) { return nil, errors.New("no tty") })

	d.PollEvents()
	if !d.IsClosing() {
		t.Error("display without a terminal should report closing")
	}
	if err := d.Present(); err == nil {
		t.Error("Present() should fail without a terminal")
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
