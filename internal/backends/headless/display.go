// Package headless is a display backend that draws into an in-memory image.
// It needs no terminal: input is scripted through Press, Click and Type, and
// frames can be recorded to an animated GIF or a still PNG/BMP.
package headless

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/arcade-runtime/internal/backends/cells"
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// Options configures displays created by the registry.
type Options struct {
	Record string // .gif records every frame; .png or .bmp keeps the last one
	Font   string // .ttf/.otf used for recipes without a path
	Frames int    // report closing after this many presents; 0 never does
}

var defaults Options

// Configure sets the options of displays created from now on.
func Configure(o Options) {
	defaults = o
}

func init() {
	registry.RegisterDisplay("headless", "Headless (images)", func() core.Display {
		return New(defaults)
	})
}

// Display renders sprites onto an RGBA frame.
type Display struct {
	opts     Options
	cellSize uint32
	frame    *image.RGBA

	input   cells.Input
	pending []func(*cells.Input)

	live     int
	presents int
	rec      *recorder
}

var _ core.Display = (*Display)(nil)

// New creates a display with a 1x1 frame until OpenWindow is called.
func New(opts Options) *Display {
	return &Display{
		opts:     opts,
		cellSize: 1,
		frame:    image.NewRGBA(image.Rect(0, 0, 1, 1)),
		rec:      newRecorder(opts.Record),
	}
}

func (d *Display) SetCellPixelSize(n uint32) {
	if n > 0 {
		d.cellSize = n
	}
}

func (d *Display) CellPixelSize() uint32 { return d.cellSize }

func (d *Display) LoadTexture(r core.Recipe) (core.RawTexture, error) {
	if !r.Foreground.Valid() || !r.Background.Valid() {
		return nil, fmt.Errorf("headless: invalid color in recipe %+v", r)
	}
	img, err := d.loadTexture(r)
	if err != nil {
		return nil, err
	}
	d.live++
	return &Texture{img: img, d: d}, nil
}

// OpenWindow replaces the frame with a black one of the given size.
func (d *Display) OpenWindow(size core.Vector2u) error {
	if size.X == 0 || size.Y == 0 {
		return fmt.Errorf("headless: empty window %dx%d", size.X, size.Y)
	}
	d.frame = image.NewRGBA(image.Rect(0, 0, int(size.X), int(size.Y)))
	d.Clear(core.ColorBlack)
	return nil
}

func (d *Display) IsButtonJustPressed(b core.Button) bool { return d.input.JustPressed(b) }
func (d *Display) IsButtonHeld(b core.Button) bool        { return d.input.Held(b) }
func (d *Display) ReleasedMouseEvent() core.MouseEvent    { return d.input.ReleasedMouse() }
func (d *Display) IsClosing() bool                        { return d.input.Closing() }

func (d *Display) StartTextCapture()        { d.input.StartCapture() }
func (d *Display) ReadCapturedText() string { return d.input.ReadText() }
func (d *Display) EndTextCapture()          { d.input.EndCapture() }

// Press queues a button press for the next PollEvents.
func (d *Display) Press(b core.Button) {
	d.pending = append(d.pending, func(in *cells.Input) { in.Press(b) })
}

// Click queues a mouse release over a cell for the next PollEvents.
func (d *Display) Click(b core.MouseButton, cell core.Vector2u) {
	d.pending = append(d.pending, func(in *cells.Input) { in.MouseRelease(b, cell) })
}

// Type queues keystrokes for the next PollEvents. '\b' and '\n' are sent
// as backspace and enter.
func (d *Display) Type(text string) {
	for _, r := range text {
		name, ch := string(r), r
		switch r {
		case '\b':
			name, ch = "backspace", 0
		case '\n':
			name, ch = "enter", 0
		}
		d.pending = append(d.pending, func(in *cells.Input) { in.Key(name, ch) })
	}
}

// RequestClose makes IsClosing report true after the next PollEvents.
func (d *Display) RequestClose() {
	d.pending = append(d.pending, func(in *cells.Input) { in.SetClosing() })
}

// PollEvents starts a new input frame and applies the queued script.
func (d *Display) PollEvents() {
	d.input.EndFrame()
	for _, apply := range d.pending {
		apply(&d.input)
	}
	d.pending = d.pending[:0]
}

func (d *Display) Clear(c core.Color) {
	xdraw.Draw(d.frame, d.frame.Bounds(), image.NewUniform(rgba(c)), image.Point{}, xdraw.Src)
}

// DrawSprite composites the texture over the frame at the sprite position.
func (d *Display) DrawSprite(s core.Sprite) {
	t, ok := s.Texture.(*Texture)
	if !ok || t.d != d {
		panic(fmt.Sprintf("headless: foreign texture %T", s.Texture))
	}
	if t.released {
		panic("headless: drawing a released texture")
	}
	b := t.img.Bounds()
	at := image.Pt(int(s.Position.X), int(s.Position.Y))
	xdraw.Draw(d.frame, b.Add(at), t.img, b.Min, xdraw.Over)
}

// Present finishes the frame and hands it to the recorder.
func (d *Display) Present() error {
	d.presents++
	d.rec.add(d.frame)
	if d.opts.Frames > 0 && d.presents >= d.opts.Frames {
		d.input.SetClosing()
	}
	return nil
}

// Frame returns a copy of the current frame.
func (d *Display) Frame() *image.RGBA {
	out := image.NewRGBA(d.frame.Bounds())
	copy(out.Pix, d.frame.Pix)
	return out
}

// Presents reports how many frames were presented.
func (d *Display) Presents() int { return d.presents }

// Close writes the recording. Every texture must have been released.
func (d *Display) Close() error {
	if d.live != 0 {
		return fmt.Errorf("headless: closed with %d live textures", d.live)
	}
	return d.rec.write()
}
