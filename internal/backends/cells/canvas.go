package cells

import (
	"fmt"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Canvas is the cell buffer a terminal backend paints sprites into before
// presenting it.
type Canvas struct {
	screen   *core.Screen
	cellSize uint32
	window   core.Vector2u
}

// NewCanvas returns an empty canvas with a cell size of 1 pixel.
func NewCanvas() *Canvas {
	return &Canvas{screen: core.NewScreen(0, 0), cellSize: 1}
}

// SetCellPixelSize changes how many pixels one cell stands for.
func (c *Canvas) SetCellPixelSize(n uint32) {
	if n == 0 {
		return
	}
	c.cellSize = n
	c.resize()
}

// CellPixelSize returns the current cell size.
func (c *Canvas) CellPixelSize() uint32 {
	return c.cellSize
}

// Open sizes the canvas for a window measured in pixels.
func (c *Canvas) Open(window core.Vector2u) {
	c.window = window
	c.resize()
}

func (c *Canvas) resize() {
	cs := c.cellSize
	w := (c.window.X + cs - 1) / cs
	h := (c.window.Y + cs - 1) / cs
	c.screen.Resize(int(w), int(h))
}

// Clear fills the canvas with blanks on bg.
func (c *Canvas) Clear(bg core.Color) {
	c.screen.Clear(bg)
}

// Draw paints a sprite holding a *Glyph. Sprites with pixel positions inside
// the same cell cover each other in call order.
func (c *Canvas) Draw(s core.Sprite) {
	g, ok := s.Texture.(*Glyph)
	if !ok {
		panic(fmt.Sprintf("cells: sprite texture %T was not made by a terminal backend", s.Texture))
	}
	if g.released {
		panic("cells: drawing a released glyph")
	}
	r := core.NewRect(int(s.Position.X), int(s.Position.Y), int(g.Size.X), int(g.Size.Y))
	c.screen.Paint(r, int(c.cellSize), g.Cell)
}

// Screen returns the cell buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}
