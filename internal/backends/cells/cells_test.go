package cells

import (
	"testing"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

func TestCellRune(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'a', 'a'},
		{'Ａ', 'A'}, // fullwidth A folds to ASCII
		{'世', '?'},
		{0, ' '},
		{'\n', ' '},
		{'#', '#'},
	}
	for _, tc := range tests {
		if got := CellRune(tc.in); got != tc.want {
			t.Errorf("CellRune(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestNewGlyphRejectsBadColors(t *testing.T) {
	if _, err := NewGlyph(core.Recipe{Character: 'x', Foreground: core.Color(42)}); err == nil {
		t.Error("NewGlyph() should reject colors outside the palette")
	}
	g, err := NewGlyph(core.Recipe{Character: 'x', Foreground: core.ColorRed, Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("NewGlyph() error: %v", err)
	}
	if g.Cell.Rune != 'x' || g.Cell.Fg != core.ColorRed || g.Size.X != 16 {
		t.Errorf("glyph = %+v", g)
	}
}

func TestCanvasPlacesSpritesByCell(t *testing.T) {
	c := NewCanvas()
	c.SetCellPixelSize(16)
	c.Open(core.Vector2u{X: 64, Y: 40})

	if w, h := c.Screen().Width(), c.Screen().Height(); w != 4 || h != 3 {
		t.Fatalf("canvas = %dx%d, expected 4x3", w, h)
	}

	a, _ := NewGlyph(core.Recipe{Character: 'a', Foreground: core.ColorWhite, Width: 16, Height: 16})
	b, _ := NewGlyph(core.Recipe{Character: 'b', Foreground: core.ColorWhite, Width: 16, Height: 16})
	c.Clear(core.ColorBlack)
	c.Draw(core.Sprite{Position: core.Vector2u{X: 16, Y: 16}, Texture: a})
	c.Draw(core.Sprite{Position: core.Vector2u{X: 20, Y: 18}, Texture: b})

	if got := c.Screen().Get(1, 1).Rune; got != 'b' {
		t.Errorf("cell (1,1) = %q, expected the later sprite", got)
	}
}

func TestCanvasPanicsOnReleasedGlyph(t *testing.T) {
	c := NewCanvas()
	c.Open(core.Vector2u{X: 4, Y: 4})
	g, _ := NewGlyph(core.Recipe{Character: 'x'})
	g.Release()

	defer func() {
		if recover() == nil {
			t.Error("Draw() of a released glyph should panic")
		}
	}()
	c.Draw(core.Sprite{Texture: g})
}

func TestInputPressAndHold(t *testing.T) {
	var in Input
	in.Key("w", 'w')

	if !in.JustPressed(core.ButtonUp) || !in.Held(core.ButtonUp) {
		t.Fatal("w should press and hold Up")
	}
	in.EndFrame()
	if in.JustPressed(core.ButtonUp) {
		t.Error("press survived the frame")
	}
	if !in.Held(core.ButtonUp) {
		t.Error("hold should outlive the press")
	}
	for i := 0; i < HoldFrames; i++ {
		in.EndFrame()
	}
	if in.Held(core.ButtonUp) {
		t.Error("hold should expire")
	}
}

func TestInputCaptureSuppressesPrintableKeys(t *testing.T) {
	var in Input
	in.StartCapture()
	in.Key("w", 'w')
	in.Key("x", 'x')
	in.Key("backspace", 0)
	in.Key("enter", 0)
	in.Key("f7", 0)

	if in.JustPressed(core.ButtonUp) {
		t.Error("typed w pressed a button during capture")
	}
	if in.JustPressed(core.ButtonStart) {
		t.Error("enter pressed Start during capture")
	}
	if !in.JustPressed(core.ButtonF7) {
		t.Error("F7 should pass through capture")
	}
	if got := in.ReadText(); got != "wx\b\n" {
		t.Errorf("ReadText() = %q, expected %q", got, "wx\b\n")
	}
	if got := in.ReadText(); got != "" {
		t.Errorf("second ReadText() = %q, expected empty", got)
	}

	in.EndCapture()
	in.Key("w", 'w')
	if !in.JustPressed(core.ButtonUp) {
		t.Error("w should press Up after capture ends")
	}
}

func TestInputMouseAndClose(t *testing.T) {
	var in Input
	in.MouseRelease(core.MouseLeft, core.Vector2u{X: 3, Y: 4})

	ev := in.ReleasedMouse()
	if ev.Type != core.MouseLeft || ev.CellPosition != (core.Vector2u{X: 3, Y: 4}) {
		t.Errorf("ReleasedMouse() = %+v", ev)
	}
	if in.ReleasedMouse().Type != core.MouseNone {
		t.Error("mouse release reported twice")
	}

	in.Key("ctrl+c", 0)
	if !in.Closing() {
		t.Error("ctrl+c should close")
	}
}
