// Package tcellterm is a terminal display backend built on tcell.
package tcellterm

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-runtime/internal/backends/cells"
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

func init() {
	registry.RegisterDisplay("tcell", "Terminal (tcell)", func() core.Display {
		return New(nil)
	})
}

// ScreenFunc creates the tcell screen when the display first needs it.
type ScreenFunc func() (tcell.Screen, error)

// Display draws cells with tcell. The terminal is taken over lazily, on the
// first PollEvents or Present, so a staged display never fights the active
// one for the terminal.
type Display struct {
	newScreen ScreenFunc
	screen    tcell.Screen
	events    chan tcell.Event
	quit      chan struct{}
	initErr   error

	canvas *cells.Canvas
	input  cells.Input

	mouseDown tcell.ButtonMask
}

var _ core.Display = (*Display)(nil)

// New creates a display. A nil newScreen uses the real terminal.
func New(newScreen ScreenFunc) *Display {
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	return &Display{newScreen: newScreen, canvas: cells.NewCanvas()}
}

func (d *Display) acquire() error {
	if d.screen != nil || d.initErr != nil {
		return d.initErr
	}
	s, err := d.newScreen()
	if err == nil {
		err = s.Init()
	}
	if err != nil {
		d.initErr = fmt.Errorf("tcellterm: init screen: %w", err)
		return d.initErr
	}
	s.EnableMouse()
	s.HideCursor()
	s.Clear()

	d.screen = s
	d.events = make(chan tcell.Event, 100)
	d.quit = make(chan struct{})
	go pump(s, d.events, d.quit)
	return nil
}

// pump forwards screen events until the screen is finalized.
func pump(s tcell.Screen, out chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

func (d *Display) SetCellPixelSize(n uint32) { d.canvas.SetCellPixelSize(n) }
func (d *Display) CellPixelSize() uint32     { return d.canvas.CellPixelSize() }

func (d *Display) LoadTexture(r core.Recipe) (core.RawTexture, error) {
	g, err := cells.NewGlyph(r)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// OpenWindow sizes the drawing area. The terminal itself is not touched.
func (d *Display) OpenWindow(size core.Vector2u) error {
	d.canvas.Open(size)
	return nil
}

func (d *Display) IsButtonJustPressed(b core.Button) bool { return d.input.JustPressed(b) }
func (d *Display) IsButtonHeld(b core.Button) bool        { return d.input.Held(b) }
func (d *Display) ReleasedMouseEvent() core.MouseEvent    { return d.input.ReleasedMouse() }
func (d *Display) IsClosing() bool                        { return d.input.Closing() }

func (d *Display) StartTextCapture()        { d.input.StartCapture() }
func (d *Display) ReadCapturedText() string { return d.input.ReadText() }
func (d *Display) EndTextCapture()          { d.input.EndCapture() }

func (d *Display) Clear(c core.Color)        { d.canvas.Clear(c) }
func (d *Display) DrawSprite(s core.Sprite) { d.canvas.Draw(s) }

// PollEvents starts a new input frame and drains pending terminal events.
func (d *Display) PollEvents() {
	d.input.EndFrame()
	if err := d.acquire(); err != nil {
		d.input.SetClosing()
		return
	}
	for {
		select {
		case ev := <-d.events:
			d.handle(ev)
		default:
			return
		}
	}
}

func (d *Display) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name, r := keyName(ev)
		if name != "" {
			d.input.Key(name, r)
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2)
		released := d.mouseDown &^ buttons
		x, y := ev.Position()
		cell := core.Vector2u{X: uint32(max(x, 0)), Y: uint32(max(y, 0))}
		if released&tcell.Button1 != 0 {
			d.input.MouseRelease(core.MouseLeft, cell)
		} else if released&tcell.Button2 != 0 {
			d.input.MouseRelease(core.MouseRight, cell)
		}
		d.mouseDown = buttons
	case *tcell.EventResize:
		if d.screen != nil {
			d.screen.Sync()
		}
	}
}

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyEscape:     "esc",
	tcell.KeyCtrlC:      "ctrl+c",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
	tcell.KeyF5:         "f5",
	tcell.KeyF6:         "f6",
	tcell.KeyF7:         "f7",
}

// keyName spells a tcell key the way cells.ButtonForKey expects.
func keyName(ev *tcell.EventKey) (string, rune) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		return strings.ToLower(string(r)), r
	}
	return keyNames[ev.Key()], 0
}

func style(c core.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(c.Fg))).
		Background(tcell.PaletteColor(int(c.Bg)))
}

// Present copies the canvas to the terminal.
func (d *Display) Present() error {
	if err := d.acquire(); err != nil {
		return err
	}
	d.screen.Clear()
	sc := d.canvas.Screen()
	for y := 0; y < sc.Height(); y++ {
		for x := 0; x < sc.Width(); x++ {
			c := sc.Get(x, y)
			d.screen.SetContent(x, y, c.Rune, nil, style(c))
		}
	}
	d.screen.Show()
	return nil
}

// Close gives the terminal back.
func (d *Display) Close() error {
	if d.screen == nil {
		return nil
	}
	close(d.quit)
	d.screen.Fini()
	d.screen = nil
	return nil
}
