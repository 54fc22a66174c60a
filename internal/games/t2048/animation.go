package t2048

// flashTicks is how long merged and new tiles stay highlighted.
const flashTicks = 6

// flash highlights the tiles a move produced.
type flash struct {
	merged   Mask
	spawned  Cell
	hasSpawn bool
	ticks    int
}

// start highlights merged cells. The spawn that follows the move is added by
// spawnTile.
func (f *flash) start(merged Mask) {
	*f = flash{merged: merged, ticks: flashTicks}
}

func (f *flash) age() {
	if f.ticks > 0 {
		f.ticks--
		if f.ticks == 0 {
			*f = flash{}
		}
	}
}

// merge reports whether the tile at (x, y) is a fresh merge.
func (f *flash) merge(x, y int) bool {
	return f.ticks > 0 && f.merged[y][x]
}

// spawn reports whether the tile at (x, y) was just spawned.
func (f *flash) spawn(x, y int) bool {
	return f.ticks > 0 && f.hasSpawn && f.spawned == Cell{X: x, Y: y}
}
