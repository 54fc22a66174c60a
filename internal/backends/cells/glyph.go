// Package cells holds what the terminal display backends share: glyph
// textures, a cell canvas and keyboard state built from key names.
package cells

import (
	"fmt"
	"unicode"

	"golang.org/x/text/width"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Glyph is the raw texture of a terminal backend: one character with its
// colors, plus the pixel size used to place it on the cell grid.
type Glyph struct {
	Cell     core.Cell
	Size     core.Vector2u
	released bool
}

// NewGlyph builds the texture for a recipe. The image path is ignored;
// terminals only show the recipe character.
func NewGlyph(r core.Recipe) (*Glyph, error) {
	if !r.Foreground.Valid() || !r.Background.Valid() {
		return nil, fmt.Errorf("cells: recipe colors out of palette: %d/%d", r.Foreground, r.Background)
	}
	return &Glyph{
		Cell: core.Cell{Rune: CellRune(r.Character), Fg: r.Foreground, Bg: r.Background},
		Size: core.Vector2u{X: r.Width, Y: r.Height},
	}, nil
}

// Release marks the glyph as freed.
func (g *Glyph) Release() {
	g.released = true
}

// Released reports whether Release was called.
func (g *Glyph) Released() bool {
	return g.released
}

// CellRune folds r into something that takes exactly one terminal cell.
// Fullwidth forms become their narrow counterparts; other wide runes and
// non-printable ones become '?' and ' '.
func CellRune(r rune) rune {
	if r == 0 || !unicode.IsPrint(r) {
		return ' '
	}
	if folded := []rune(width.Narrow.String(string(r))); len(folded) == 1 {
		r = folded[0]
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return '?'
	}
	return r
}
