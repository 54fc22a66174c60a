// Package glyph draws text and colored cells for games that think in a grid.
// Each distinct rune and color pair becomes one texture, registered the first
// time it is drawn.
package glyph

import (
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
)

type key struct {
	r      rune
	fg, bg core.Color
}

// Painter maps grid cells to sprites through a Host.
type Painter struct {
	host   registry.Host
	cell   uint32
	next   core.TextureID
	known  map[key]*texture.Handle
	failed map[key]bool // the display could not load these; not retried until the next Init
}

// New returns a painter drawing cells of cell pixels. Texture ids are taken
// in order starting at firstID; the game must not register ids of its own in
// that range.
func New(h registry.Host, firstID core.TextureID, cell uint32) *Painter {
	return &Painter{
		host:   h,
		cell:   cell,
		next:   firstID,
		known:  make(map[key]*texture.Handle),
		failed: make(map[key]bool),
	}
}

// CellSize returns the pixel size of one cell.
func (p *Painter) CellSize() uint32 {
	return p.cell
}

// Handle returns the texture for r in the given colors, registering it on
// first use. It returns nil if the texture could not be created.
func (p *Painter) Handle(r rune, fg, bg core.Color) *texture.Handle {
	k := key{r: r, fg: fg, bg: bg}
	if h, ok := p.known[k]; ok {
		return h
	}
	if p.failed[k] {
		return nil
	}
	id := p.next
	p.next++
	h := p.host.RegisterTexture(id, core.Recipe{
		Character:  r,
		Foreground: fg,
		Background: bg,
		Width:      p.cell,
		Height:     p.cell,
	})
	if h == nil {
		p.failed[k] = true
		return nil
	}
	p.known[k] = h
	return h
}

// Cell draws r at grid position (x, y). Negative positions are skipped.
func (p *Painter) Cell(x, y int, r rune, fg, bg core.Color) {
	if x < 0 || y < 0 {
		return
	}
	h := p.Handle(r, fg, bg)
	if h == nil {
		return
	}
	p.host.DrawSprite(core.Vector2u{X: uint32(x) * p.cell, Y: uint32(y) * p.cell}, h)
}

// Text draws s starting at (x, y), one rune per cell.
func (p *Painter) Text(x, y int, s string, fg, bg core.Color) {
	for _, r := range s {
		p.Cell(x, y, r, fg, bg)
		x++
	}
}

// Center draws s centered in a row width cells wide.
func (p *Painter) Center(width, y int, s string, fg, bg core.Color) {
	n := len([]rune(s))
	p.Text((width-n)/2, y, s, fg, bg)
}

// Fill paints a w x h block of blank cells in bg.
func (p *Painter) Fill(x, y, w, h int, bg core.Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			p.Cell(col, row, ' ', bg, bg)
		}
	}
}

// Box draws a frame of w x h cells.
func (p *Painter) Box(x, y, w, h int, fg, bg core.Color) {
	for col := x; col < x+w; col++ {
		edge := '-'
		if col == x || col == x+w-1 {
			edge = '+'
		}
		p.Cell(col, y, edge, fg, bg)
		p.Cell(col, y+h-1, edge, fg, bg)
	}
	for row := y + 1; row < y+h-1; row++ {
		p.Cell(x, row, '|', fg, bg)
		p.Cell(x+w-1, row, '|', fg, bg)
	}
}
