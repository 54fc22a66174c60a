// Package teaterm is a terminal display backend that runs a Bubble Tea
// program next to the runtime loop. The program owns the terminal; the
// display hands it finished frames and reads its input back.
package teaterm

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-runtime/internal/backends/cells"
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

func init() {
	registry.RegisterDisplay("bubbletea", "Terminal (Bubble Tea)", func() core.Display {
		return New()
	})
}

// controlKeys documents the reserved band in the help line.
type controlKeys struct {
	Display key.Binding
	Game    key.Binding
	Restart key.Binding
	Menu    key.Binding
	Exit    key.Binding
}

func (k controlKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Display, k.Game, k.Restart, k.Menu, k.Exit}
}

func (k controlKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultControlKeys() controlKeys {
	return controlKeys{
		Display: key.NewBinding(key.WithKeys("f1", "f2"), key.WithHelp("f1/f2", "display")),
		Game:    key.NewBinding(key.WithKeys("f3", "f4"), key.WithHelp("f3/f4", "game")),
		Restart: key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "restart")),
		Menu:    key.NewBinding(key.WithKeys("f6"), key.WithHelp("f6", "menu")),
		Exit:    key.NewBinding(key.WithKeys("f7", "ctrl+c"), key.WithHelp("f7", "exit")),
	}
}

// Display draws through a Bubble Tea program started on first use.
type Display struct {
	opts    []tea.ProgramOption
	program *tea.Program
	events  chan tea.Msg
	done    chan struct{}
	runErr  error

	canvas *cells.Canvas
	input  cells.Input
	keys   controlKeys
	help   help.Model

	mouseDown bool
}

var _ core.Display = (*Display)(nil)

// New creates a display. opts are appended to the default program options
// (alternate screen, mouse cell motion).
func New(opts ...tea.ProgramOption) *Display {
	return &Display{
		opts:   opts,
		events: make(chan tea.Msg, 256),
		canvas: cells.NewCanvas(),
		keys:   defaultControlKeys(),
		help:   help.New(),
	}
}

func (d *Display) acquire() {
	if d.program != nil {
		return
	}
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, d.opts...)
	d.program = tea.NewProgram(&model{events: d.events}, opts...)
	d.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		_, err := p.Run()
		d.runErr = err
		close(done)
	}(d.program, d.done)
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

// OpenWindow sizes the drawing area; the program starts with the first frame.
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

// PollEvents starts a new input frame and applies the input the program
// forwarded since the last one.
func (d *Display) PollEvents() {
	d.input.EndFrame()
	d.acquire()

	select {
	case <-d.done:
		d.input.SetClosing()
	default:
	}

	for {
		select {
		case msg := <-d.events:
			d.handle(msg)
		default:
			return
		}
	}
}

func (d *Display) handle(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var r rune
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			r = msg.Runes[0]
		} else if msg.Type == tea.KeySpace {
			r = ' '
		}
		d.input.Key(strings.ToLower(msg.String()), r)
	case tea.MouseMsg:
		cell := core.Vector2u{X: uint32(max(msg.X, 0)), Y: uint32(max(msg.Y, 0))}
		switch msg.Action {
		case tea.MouseActionPress:
			d.mouseDown = true
		case tea.MouseActionRelease:
			if !d.mouseDown {
				return
			}
			d.mouseDown = false
			b := core.MouseLeft
			if msg.Button == tea.MouseButtonRight {
				b = core.MouseRight
			}
			d.input.MouseRelease(b, cell)
		}
	}
}

// frame renders the canvas and the help line.
func (d *Display) frame() string {
	return renderScreen(d.canvas.Screen()) + "\n" + helpStyle.Render(d.help.ShortHelpView(d.keys.ShortHelp()))
}

// Present sends the frame to the program.
func (d *Display) Present() error {
	d.acquire()
	select {
	case <-d.done:
		return d.runErr
	default:
	}
	d.program.Send(frameMsg(d.frame()))
	return nil
}

// Close stops the program and waits for the terminal to be restored.
func (d *Display) Close() error {
	if d.program == nil {
		return nil
	}
	d.program.Quit()
	<-d.done
	d.program = nil
	return d.runErr
}
