// Package core provides the fundamental types shared by the runtime, the display
// backends and the game units. It contains no external dependencies so that
// every hot-loadable unit can link against it without dragging a stack along.
package core

// Vector2u is an unsigned 2D position or size, in pixels or cells depending on use.
type Vector2u struct {
	X, Y uint32
}

// Rect represents an axis-aligned box in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns the number of pixels covered by the rectangle.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Intersect returns the overlapping part of two rectangles.
// The result has zero area when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := Max(r.X, other.X)
	y := Max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: Min(r.Right(), other.Right()) - x,
		H: Min(r.Bottom(), other.Bottom()) - y,
	}
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CellCoverage maps a sprite rectangle onto a grid of square cells of the given
// pixel size, the way text backends place sprites.
//
// primary is the cell the sprite overlaps the most; the sprite's character is
// drawn there. filled lists every cell the sprite covers by more than half,
// which take the sprite's background color. A sprite always occupies at least
// its primary cell.
func CellCoverage(sprite Rect, cell int) (primary Vector2u, filled []Vector2u) {
	if cell <= 0 {
		cell = 1
	}
	if sprite.W <= 0 || sprite.H <= 0 {
		sprite.W, sprite.H = 1, 1
	}

	best := -1
	x0, y0 := floorDiv(sprite.X, cell), floorDiv(sprite.Y, cell)
	x1, y1 := floorDiv(sprite.Right()-1, cell), floorDiv(sprite.Bottom()-1, cell)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if cx < 0 || cy < 0 {
				continue
			}
			area := sprite.Intersect(NewRect(cx*cell, cy*cell, cell, cell)).Area()
			pos := Vector2u{X: uint32(cx), Y: uint32(cy)}
			if area > best {
				best = area
				primary = pos
			}
			if area*2 > cell*cell {
				filled = append(filled, pos)
			}
		}
	}
	return primary, filled
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
