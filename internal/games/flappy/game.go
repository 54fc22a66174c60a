// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/glyph"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// Physics constants, in cells and ticks at TicksPerSecond.
const (
	TicksPerSecond = 30
	CellPixels     = 16

	Gravity      = 0.08 // Downward acceleration per tick
	JumpImpulse  = -0.7 // Upward velocity when jumping (negative = up)
	MaxFallSpeed = 0.9  // Terminal velocity
	PlayerX      = 8    // Fixed column of the player
	PlayerWidth  = 2
	PlayerHeight = 1

	Columns = 48
	Rows    = 18
	GroundY = Rows - 1

	// Pipes move one column every shiftEvery ticks; every speedUpEvery
	// passed pipes the interval shrinks by one down to minShiftEvery.
	shiftEvery    = 3
	minShiftEvery = 1
	speedUpEvery  = 5

	// restartDelay keeps the jump that ended a run from restarting it.
	restartDelay = 15
)

// Game implements the Flappy Bird game logic.
type Game struct {
	seed  int64
	rng   *rand.Rand
	host  registry.Host
	paint *glyph.Painter

	playerY   float64 // Player vertical position (top of hitbox)
	playerVel float64 // Player vertical velocity
	pipes     *PipeManager
	score     int
	gameOver  bool
	paused    bool
	recorded  bool
	tickCount int
	deadTicks int
}

// New creates a game seeded from the clock.
func New() *Game {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a game whose pipes are fixed by seed.
func NewSeeded(seed int64) *Game {
	return &Game{seed: seed}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Init opens the field and starts a run.
func (g *Game) Init(h registry.Host) {
	g.host = h
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.seed))
		g.pipes = NewPipeManager(g.rng, Columns, GroundY)
	}
	h.SetFramerate(TicksPerSecond)
	h.SetCellPixelSize(CellPixels)
	h.OpenWindow(core.Vector2u{X: Columns * CellPixels, Y: Rows * CellPixels})
	g.paint = glyph.New(h, 1, CellPixels)
	g.reset()
}

// reset initializes or restarts the run. The pipe sequence continues from
// the game's generator.
func (g *Game) reset() {
	g.playerY = float64(Rows) / 2.0
	g.playerVel = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.recorded = false
	g.tickCount = 0
	g.deadTicks = 0
	g.pipes.Reset()
}

// Update advances the game by one tick.
func (g *Game) Update() {
	h := g.host
	if g.gameOver {
		g.deadTicks++
		if g.deadTicks >= restartDelay && (h.IsButtonJustPressed(core.ButtonA) || h.IsButtonJustPressed(core.ButtonStart)) {
			g.reset()
		}
		return
	}

	// Handle pause toggle
	if h.IsButtonJustPressed(core.ButtonStart) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	g.tickCount++

	if h.IsButtonJustPressed(core.ButtonA) || h.IsButtonJustPressed(core.ButtonUp) {
		g.playerVel = JumpImpulse
	}

	// Apply physics
	g.playerVel = min(g.playerVel+Gravity, MaxFallSpeed)
	g.playerY += g.playerVel

	if g.tickCount%g.shiftInterval() == 0 {
		g.score += g.pipes.Shift(PlayerX)
	}

	// Hit top of screen
	if g.playerY < 0 {
		g.playerY = 0
		g.die()
	}
	// Hit the ground
	if int(g.playerY)+PlayerHeight > GroundY {
		g.playerY = float64(GroundY - PlayerHeight)
		g.die()
	}
	if g.pipes.CheckCollision(g.playerRect()) {
		g.die()
	}
}

// shiftInterval returns the ticks between pipe moves at the current score.
func (g *Game) shiftInterval() int {
	return max(shiftEvery-g.score/speedUpEvery, minShiftEvery)
}

func (g *Game) die() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.deadTicks = 0
	if !g.recorded {
		g.recorded = true
		g.host.RecordScore(g.score)
	}
}

// playerRect returns the player's collision rectangle.
func (g *Game) playerRect() core.Rect {
	return core.NewRect(PlayerX, int(g.playerY), PlayerWidth, PlayerHeight)
}

// Draw renders the field, the pipes, the bird and the HUD.
func (g *Game) Draw() {
	p := g.paint
	g.host.Clear(core.ColorBlack)

	for x := range Columns {
		p.Cell(x, GroundY, '=', core.ColorYellow, core.ColorBlack)
	}
	for _, pipe := range g.pipes.Pipes() {
		g.drawPipe(pipe)
	}

	y := int(g.playerY)
	p.Cell(PlayerX, y, 'o', core.ColorYellow, core.ColorBlack)
	p.Cell(PlayerX+1, y, '>', core.ColorYellow, core.ColorBlack)

	p.Text(2, 0, fmt.Sprintf(" Score: %d ", g.score), core.ColorWhite, core.ColorBlack)

	switch {
	case g.paused:
		g.drawMessage("PAUSED", "Start resumes")
	case g.gameOver:
		g.drawMessage("GAME OVER", fmt.Sprintf("Score: %d  A plays again", g.score))
	}
}

// drawPipe renders a single pipe with caps facing the gap.
func (g *Game) drawPipe(pipe Pipe) {
	p := g.paint
	bottomY := pipe.GapY + pipe.GapHeight
	for x := pipe.X; x < pipe.X+PipeWidth; x++ {
		if x < 0 || x >= Columns {
			continue
		}
		for y := 0; y < pipe.GapY; y++ {
			p.Cell(x, y, '#', core.ColorGreen, core.ColorBlack)
		}
		if pipe.GapY > 0 {
			p.Cell(x, pipe.GapY-1, '=', core.ColorGreen, core.ColorBlack)
		}
		for y := bottomY; y < GroundY; y++ {
			p.Cell(x, y, '#', core.ColorGreen, core.ColorBlack)
		}
		if bottomY < GroundY {
			p.Cell(x, bottomY, '=', core.ColorGreen, core.ColorBlack)
		}
	}
}

// drawMessage draws a message box in the center of the field.
func (g *Game) drawMessage(title, subtitle string) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (Columns - boxW) / 2
	boxY := (Rows - boxH) / 2

	g.paint.Fill(boxX, boxY, boxW, boxH, core.ColorBlack)
	g.paint.Box(boxX, boxY, boxW, boxH, core.ColorWhite, core.ColorBlack)
	g.paint.Center(Columns, boxY+1, title, core.ColorWhite, core.ColorBlack)
	g.paint.Center(Columns, boxY+3, subtitle, core.ColorWhite, core.ColorBlack)
}

// Register the game with the registry
func init() {
	registry.RegisterGame("flappy", "Flappy Bird", func() registry.Game {
		return New()
	})
}
