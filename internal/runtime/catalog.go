package runtime

import "github.com/vovakirdan/arcade-runtime/internal/config"

// Catalog is a fixed, ordered list of units with a cursor. The cursor is -1
// while the active unit is not part of the catalog (the menu).
type Catalog struct {
	units   []config.Unit
	current int
}

// NewCatalog creates a catalog with no current entry.
func NewCatalog(units []config.Unit) *Catalog {
	return &Catalog{units: units, current: -1}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.units)
}

// Units returns the entries in catalog order.
func (c *Catalog) Units() []config.Unit {
	return c.units
}

// At returns entry i.
func (c *Catalog) At(i int) config.Unit {
	return c.units[i]
}

// Index returns the position of the named entry, or -1.
func (c *Catalog) Index(name string) int {
	return config.IndexOf(c.units, name)
}

// Current returns the current entry index, or -1.
func (c *Catalog) Current() int {
	return c.current
}

// Select moves the cursor. -1 clears it.
func (c *Catalog) Select(i int) {
	c.current = i
}

// Peek returns the index delta steps away from the cursor, wrapping around
// both ends. From no current entry, +1 lands on the first and -1 on the last.
// Peek returns -1 for an empty catalog.
func (c *Catalog) Peek(delta int) int {
	n := len(c.units)
	if n == 0 {
		return -1
	}
	if c.current < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return ((c.current+delta)%n + n) % n
}
