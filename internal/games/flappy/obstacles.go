package flappy

import (
	"math/rand"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Pipe layout, in cells.
const (
	PipeWidth    = 3
	PipeSpacing  = 16 // columns between the left edges of two pipes
	MinGapSize   = 5
	MaxGapSize   = 8
	TopMargin    = 2
	BottomMargin = 2
)

// Pipe represents a vertical obstacle with a gap for the player to pass through.
type Pipe struct {
	X         int  // Horizontal position (left edge)
	GapY      int  // Y position where gap starts (top of gap)
	GapHeight int  // Height of the passable gap
	Passed    bool // Whether the player has passed this pipe (for scoring)
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect() core.Rect {
	return core.NewRect(p.X, 0, PipeWidth, p.GapY)
}

// BottomRect returns the collision rectangle for the bottom portion of the
// pipe, down to groundY.
func (p Pipe) BottomRect(groundY int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.X, bottomY, PipeWidth, groundY-bottomY)
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes   []Pipe
	rng     *rand.Rand
	width   int
	groundY int
}

// NewPipeManager creates a pipe manager for a field width columns wide whose
// ground is at row groundY. Gaps are drawn from rng.
func NewPipeManager(rng *rand.Rand, width, groundY int) *PipeManager {
	pm := &PipeManager{
		pipes:   make([]Pipe, 0, 8),
		rng:     rng,
		width:   width,
		groundY: groundY,
	}
	pm.Reset()
	return pm
}

// Reset clears all pipes.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
}

// Shift moves every pipe one column left and spawns new ones as needed.
// Returns the number of pipes the player at playerX has passed.
func (pm *PipeManager) Shift(playerX int) int {
	passed := 0

	for i := range pm.pipes {
		pm.pipes[i].X--
		if !pm.pipes[i].Passed && pm.pipes[i].X+PipeWidth <= playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	// Remove pipes that have moved off the left side
	valid := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+PipeWidth > 0 {
			valid = append(valid, p)
		}
	}
	pm.pipes = valid

	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X <= pm.width-PipeSpacing {
		pm.spawnPipe()
	}
	return passed
}

// spawnPipe creates a new pipe at the right edge of the field.
func (pm *PipeManager) spawnPipe() {
	gapHeight := MinGapSize + pm.rng.Intn(MaxGapSize-MinGapSize+1)

	minGapY := TopMargin
	maxGapY := max(pm.groundY-BottomMargin-gapHeight, minGapY)
	gapY := minGapY + pm.rng.Intn(maxGapY-minGapY+1)

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.width,
		GapY:      gapY,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given rectangle collides with any pipe.
func (pm *PipeManager) CheckCollision(r core.Rect) bool {
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect(pm.groundY)) {
			return true
		}
	}
	return false
}
