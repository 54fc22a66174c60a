package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/glyph"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	// TicksPerSecond is the simulation rate the game asks for.
	TicksPerSecond = 30
	// CellPixels is the size of one text cell.
	CellPixels = 16

	levelClearTicks = 60
	endlessSpawn4   = 0.10
)

// Game implements the 2048 puzzle game.
type Game struct {
	mode  Mode
	seed  int64
	rng   *rand.Rand
	host  registry.Host
	paint *glyph.Painter
	tick  uint64

	score         int
	board         Board
	levelIndex    int // Current level (0-indexed)
	currentTarget int // Current tile target
	spawn4Prob    float64

	gameOver     bool
	levelCleared bool
	won          bool
	paused       bool
	recorded     bool
	clearTicks   int

	flash flash
}

func init() {
	registry.RegisterGame("2048", "2048", func() registry.Game {
		return New(ModeCampaign)
	})
	registry.RegisterGame("2048_endless", "2048 (Endless)", func() registry.Game {
		return New(ModeEndless)
	})
}

// New creates a game seeded from the clock.
func New(mode Mode) *Game {
	return NewSeeded(mode, time.Now().UnixNano())
}

// NewSeeded creates a game whose tile spawns are fixed by seed.
func NewSeeded(mode Mode, seed int64) *Game {
	return &Game{mode: mode, seed: seed}
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Init starts a fresh session.
func (g *Game) Init(h registry.Host) {
	g.host = h
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	h.SetFramerate(TicksPerSecond)
	h.SetCellPixelSize(CellPixels)
	h.OpenWindow(core.Vector2u{X: screenColumns * CellPixels, Y: screenRows * CellPixels})
	g.paint = glyph.New(h, 1, CellPixels)
	g.reset()
}

// reset starts a new run with two tiles on an empty board.
func (g *Game) reset() {
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.recorded = false
	g.clearTicks = 0
	g.flash = flash{}
	g.board = Board{}
	g.levelIndex = 0
	g.loadLevel()

	g.spawnTile()
	g.spawnTile()
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.mode == ModeEndless {
		g.currentTarget = 0
		g.spawn4Prob = endlessSpawn4
		return
	}

	st := stageAt(g.levelIndex)
	g.currentTarget = st.target
	g.spawn4Prob = st.spawn4
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (g *Game) spawnTile() {
	emptyCells := EmptyCells(g.board)
	if len(emptyCells) == 0 {
		return
	}

	cell := emptyCells[g.rng.Intn(len(emptyCells))]
	value := 2
	if g.rng.Float64() < g.spawn4Prob {
		value = 4
	}
	g.board[cell.Y][cell.X] = value
	g.flash.spawned = cell
	g.flash.hasSpawn = true
	g.flash.ticks = flashTicks
}

// Update advances the game by one tick.
func (g *Game) Update() {
	g.tick++
	g.flash.age()
	h := g.host

	if g.gameOver || g.won {
		g.finishRun()
		if h.IsButtonJustPressed(core.ButtonA) || h.IsButtonJustPressed(core.ButtonStart) {
			g.reset()
		}
		return
	}

	if h.IsButtonJustPressed(core.ButtonStart) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= levelClearTicks {
			g.advanceLevel()
		}
		return
	}

	switch {
	case h.IsButtonJustPressed(core.ButtonUp):
		g.processMove(DirUp)
	case h.IsButtonJustPressed(core.ButtonDown):
		g.processMove(DirDown)
	case h.IsButtonJustPressed(core.ButtonLeft):
		g.processMove(DirLeft)
	case h.IsButtonJustPressed(core.ButtonRight):
		g.processMove(DirRight)
	}
	if g.gameOver {
		g.finishRun()
	}
}

func (g *Game) finishRun() {
	if g.recorded {
		return
	}
	g.recorded = true
	g.host.RecordScore(g.score)
}

// processMove handles a move in the given direction.
func (g *Game) processMove(dir Direction) {
	move := Slide(g.board, dir)
	if !move.Changed {
		return
	}

	g.board = move.Board
	g.score += move.Score
	g.flash.start(move.Merged)

	if g.mode == ModeCampaign && g.currentTarget > 0 && MaxTile(g.board) >= g.currentTarget {
		g.levelCleared = true
		g.clearTicks = 0
		return
	}

	g.spawnTile()
	if IsGameOver(g.board) {
		g.gameOver = true
	}
}

// advanceLevel moves to the next level, keeping the board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0

	if lastStage(g.levelIndex) {
		g.won = true
		g.finishRun()
		return
	}

	g.levelIndex++
	g.loadLevel()
}

// Phase is what a run is doing on the current tick.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseLevelCleared
	PhaseWon
	PhaseOver
)

// Phase reports the run's phase. Pause hides every other phase.
func (g *Game) Phase() Phase {
	switch {
	case g.paused:
		return PhasePaused
	case g.levelCleared:
		return PhaseLevelCleared
	case g.won:
		return PhaseWon
	case g.gameOver:
		return PhaseOver
	}
	return PhasePlaying
}
