// Package snake implements Snake with a campaign of fixed maps and an endless
// mode that speeds up every cycle through them.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/glyph"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
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
	// CellPixels is the size of one map cell.
	CellPixels = 16

	hudHeight       = 2
	minColumns      = 40
	levelClearTicks = 45
	endlessFood     = 10
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y int
}

// Game implements the Snake game.
type Game struct {
	mode  Mode
	seed  int64
	rng   *rand.Rand
	host  registry.Host
	paint *glyph.Painter

	tick           uint64
	score          int
	foodEaten      int // Food eaten in current level
	levelIndex     int // Current level (0-indexed)
	moveEveryTicks int
	moveTicker     int // Counts ticks until next move

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool      // If true, don't remove tail on next move

	// Map state
	columns   int // window width in cells
	offsetX   int // window column of the map's left edge
	mapWidth  int
	mapHeight int
	walls     map[Point]bool
	food      Point

	gameOver     bool
	levelCleared bool
	won          bool
	paused       bool
	recorded     bool // score of the finished run was reported

	clearTicks int
}

func init() {
	registry.RegisterGame("snake", "Snake", func() registry.Game {
		return New(ModeCampaign)
	})
	registry.RegisterGame("snake_endless", "Snake (Endless)", func() registry.Game {
		return New(ModeEndless)
	})
}

// New creates a game seeded from the clock.
func New(mode Mode) *Game {
	return NewSeeded(mode, time.Now().UnixNano())
}

// NewSeeded creates a game whose food placement is fixed by seed.
func NewSeeded(mode Mode, seed int64) *Game {
	return &Game{mode: mode, seed: seed}
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Snake (Endless)"
	}
	return "Snake"
}

// Init starts a fresh session. The map size is fixed, so the window is
// opened once per session at the size of the largest level.
func (g *Game) Init(h registry.Host) {
	g.host = h
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	h.SetFramerate(TicksPerSecond)
	h.SetCellPixelSize(CellPixels)

	w, ht := mapBounds()
	g.columns = max(w, minColumns)
	h.OpenWindow(core.Vector2u{X: uint32(g.columns * CellPixels), Y: uint32((ht + hudHeight) * CellPixels)})
	g.paint = glyph.New(h, 1, CellPixels)
	g.reset()
}

func mapBounds() (w, h int) {
	for _, lvl := range Levels {
		h = max(h, len(lvl.Layout))
		for _, row := range lvl.Layout {
			w = max(w, len(row))
		}
	}
	return w, h
}

// reset starts a new run from the first level.
func (g *Game) reset() {
	g.tick = 0
	g.score = 0
	g.foodEaten = 0
	g.levelIndex = 0
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.recorded = false
	g.clearTicks = 0
	g.loadLevel()
}

// loadLevel loads the current level's map and spawns the snake.
func (g *Game) loadLevel() {
	level := GetLevel(g.levelIndex % LevelCount())

	// In endless mode, increase speed each cycle
	g.moveEveryTicks = level.MoveEveryTicks
	if g.mode == ModeEndless {
		cycle := g.levelIndex / LevelCount()
		g.moveEveryTicks = max(1, level.MoveEveryTicks-cycle)
	}
	g.moveTicker = 0
	g.foodEaten = 0
	g.levelCleared = false

	g.walls = make(map[Point]bool)
	g.mapHeight = len(level.Layout)
	g.mapWidth = 0
	for y, row := range level.Layout {
		g.mapWidth = max(g.mapWidth, len(row))
		for x, ch := range row {
			if ch == '#' {
				g.walls[Point{X: x, Y: y}] = true
			}
		}
	}

	g.offsetX = (g.columns - g.mapWidth) / 2
	g.initSnake()
	g.spawnFood()
}

// initSnake places the snake where it has room to move right.
func (g *Game) initSnake() {
	startX := g.mapWidth / 4
	startY := g.mapHeight / 2

	for range 100 {
		if g.clearRun(startX, startY, 6) {
			break
		}
		startX = 1 + g.rng.Intn(max(1, g.mapWidth/2))
		startY = 1 + g.rng.Intn(max(1, g.mapHeight-2))
	}

	// Create initial snake (3 segments, head at front)
	g.snake = []Point{
		{X: startX + 2, Y: startY}, // Head
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
}

func (g *Game) clearRun(x, y, n int) bool {
	for i := range n {
		p := Point{X: x + i, Y: y}
		if g.walls[p] || p.X < 1 || p.X >= g.mapWidth-1 || p.Y < 1 || p.Y >= g.mapHeight-1 {
			return false
		}
	}
	return true
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := 1; y < g.mapHeight-1; y++ {
		for x := 1; x < g.mapWidth-1; x++ {
			p := Point{X: x, Y: y}
			if !g.walls[p] && !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Update advances the game by one tick.
func (g *Game) Update() {
	g.tick++
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

	g.processInput()

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.moveSnake()
	}
	if g.gameOver {
		g.finishRun()
	}
}

// finishRun reports the score of a run that just ended, once.
func (g *Game) finishRun() {
	if g.recorded {
		return
	}
	g.recorded = true
	g.host.RecordScore(g.score)
}

// processInput handles direction changes.
func (g *Game) processInput() {
	h := g.host
	newDir := g.nextDir

	switch {
	case h.IsButtonJustPressed(core.ButtonUp):
		newDir = DirUp
	case h.IsButtonJustPressed(core.ButtonDown):
		newDir = DirDown
	case h.IsButtonJustPressed(core.ButtonLeft):
		newDir = DirLeft
	case h.IsButtonJustPressed(core.ButtonRight):
		newDir = DirRight
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir

	head := g.snake[0]
	var newHead Point
	switch g.direction {
	case DirUp:
		newHead = Point{X: head.X, Y: head.Y - 1}
	case DirDown:
		newHead = Point{X: head.X, Y: head.Y + 1}
	case DirLeft:
		newHead = Point{X: head.X - 1, Y: head.Y}
	case DirRight:
		newHead = Point{X: head.X + 1, Y: head.Y}
	}

	if g.walls[newHead] || newHead.X < 0 || newHead.X >= g.mapWidth ||
		newHead.Y < 0 || newHead.Y >= g.mapHeight {
		g.gameOver = true
		return
	}

	// The tail moves away this tick unless the snake is growing.
	checkLen := len(g.snake)
	if !g.growing && checkLen > 0 {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	ate := newHead == g.food
	if ate {
		g.score++
		g.foodEaten++
		g.growing = true
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
	}

	// Completion may load the next map, so it runs after the move is done.
	if ate {
		g.checkLevelCompletion()
	}
}

func (g *Game) checkLevelCompletion() {
	if g.mode == ModeCampaign {
		if level := GetLevel(g.levelIndex); level != nil && g.foodEaten >= level.TargetFood {
			g.levelCleared = true
			g.clearTicks = 0
		}
		return
	}
	if g.foodEaten >= endlessFood {
		g.levelIndex++
		g.loadLevel()
	}
}

func (g *Game) advanceLevel() {
	g.levelIndex++
	if g.mode == ModeCampaign && g.levelIndex >= LevelCount() {
		g.won = true
		g.finishRun()
		return
	}
	g.loadLevel()
}

// Draw renders the HUD, the map and any overlay.
func (g *Game) Draw() {
	h := g.host
	p := g.paint
	h.Clear(core.ColorBlack)

	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Snake (Endless)  Score: %d  Speed: %d", g.score, 7-g.moveEveryTicks)
	} else {
		hud = fmt.Sprintf(" Snake  Score: %d  Level: %d/%d  Food: %d", g.score, g.levelIndex%LevelCount()+1, LevelCount(), g.foodEaten)
	}
	p.Text(0, 0, hud, core.ColorWhite, core.ColorBlack)
	for x := range g.columns {
		p.Cell(x, 1, '-', core.ColorWhite, core.ColorBlack)
	}

	ox := g.offsetX
	for wall := range g.walls {
		p.Cell(ox+wall.X, wall.Y+hudHeight, '#', core.ColorBlue, core.ColorBlack)
	}
	for i, seg := range g.snake {
		ch := 'o'
		if i == 0 {
			ch = 'O'
		}
		p.Cell(ox+seg.X, seg.Y+hudHeight, ch, core.ColorGreen, core.ColorBlack)
	}
	if g.food.X >= 0 {
		p.Cell(ox+g.food.X, g.food.Y+hudHeight, '*', core.ColorRed, core.ColorBlack)
	}

	switch g.Phase() {
	case PhaseWon:
		g.overlay("You Win!", fmt.Sprintf("Final Score: %d", g.score))
	case PhaseOver:
		g.overlay("Game Over", "Press A to play again")
	case PhaseLevelCleared:
		name := GetLevel(g.levelIndex).Name
		g.overlay(fmt.Sprintf("Level %d cleared!", g.levelIndex+1), name)
	case PhasePaused:
		g.overlay("Paused", "Press Start to continue")
	}
}

// Phase is what a run is doing on the current tick.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseLevelCleared
	PhaseOver
	PhaseWon
)

// Phase reports the run's phase. A finished run outranks a pending level clear.
func (g *Game) Phase() Phase {
	switch {
	case g.won:
		return PhaseWon
	case g.gameOver:
		return PhaseOver
	case g.levelCleared:
		return PhaseLevelCleared
	case g.paused:
		return PhasePaused
	}
	return PhasePlaying
}

// overlay draws a centered two-line message box.
func (g *Game) overlay(line1, line2 string) {
	w := g.columns
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	x := (w - boxW) / 2
	y := hudHeight + (g.mapHeight-boxH)/2

	g.paint.Fill(x, y, boxW, boxH, core.ColorBlack)
	g.paint.Box(x, y, boxW, boxH, core.ColorYellow, core.ColorBlack)
	g.paint.Center(w, y+1, line1, core.ColorYellow, core.ColorBlack)
	g.paint.Center(w, y+3, line2, core.ColorWhite, core.ColorBlack)
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
