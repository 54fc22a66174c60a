package core

import (
	"strings"
)

// Cell is one character position of a text display.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// BlankCell is what a cleared screen is filled with.
var BlankCell = Cell{Rune: ' ', Fg: ColorWhite, Bg: ColorBlack}

// Screen is a 2D cell buffer that text backends compose a frame into before
// handing it to the terminal. Sprites arrive in pixel coordinates and are
// folded onto cells with CellCoverage.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = Max(width, 0), Max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}

	old := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.cells = make([]Cell, width*height)
	s.Clear(ColorBlack)

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y*width:y*width+copyW], old[y*oldW:y*oldW+copyW])
	}
}

// Clear fills the entire screen with spaces on the given background.
func (s *Screen) Clear(bg Color) {
	blank := BlankCell
	blank.Bg = bg
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Cell) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = c
}

// SetBackground recolors the background at the given position and blanks its
// character, leaving nothing from an occluded sprite visible.
func (s *Screen) SetBackground(x, y int, bg Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: ' ', Fg: bg, Bg: bg}
}

// Get returns the cell at the given position.
// Returns BlankCell for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Cell {
	if !s.inside(x, y) {
		return BlankCell
	}
	return s.cells[y*s.width+x]
}

// Paint folds a glyph sprite covering the pixel rectangle r onto the grid.
// Cells covered by more than half take the glyph background; the cell the
// sprite overlaps the most shows the glyph itself.
func (s *Screen) Paint(r Rect, cellPixels int, glyph Cell) {
	primary, filled := CellCoverage(r, cellPixels)
	for _, pos := range filled {
		s.SetBackground(int(pos.X), int(pos.Y), glyph.Bg)
	}
	s.Set(int(primary.X), int(primary.Y), glyph)
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg, bg Color) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, Cell{Rune: r, Fg: fg, Bg: bg})
		i++
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the characters of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x := range runes {
		runes[x] = s.cells[y*s.width+x].Rune
	}
	return string(runes)
}

// Runs calls fn for every maximal horizontal run of cells on row y that share
// the same colors. Renderers use it to style a whole run at once.
func (s *Screen) Runs(y int, fn func(x int, text string, fg, bg Color)) {
	if y < 0 || y >= s.height || s.width == 0 {
		return
	}
	row := s.cells[y*s.width : (y+1)*s.width]
	start := 0
	var sb strings.Builder
	for x := 0; x <= len(row); x++ {
		if x == len(row) || row[x].Fg != row[start].Fg || row[x].Bg != row[start].Bg {
			fn(start, sb.String(), row[start].Fg, row[start].Bg)
			sb.Reset()
			start = x
		}
		if x < len(row) {
			sb.WriteRune(row[x].Rune)
		}
	}
}
