package t2048

import (
	"testing"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/gametest"
)

func TestSlideRowMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
	}{
		{
			name:     "simple merge",
			input:    [4]int{2, 2, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    [4]int{2, 2, 2, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    [4]int{2, 2, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "no merge possible",
			input:    [4]int{2, 4, 8, 16},
			expected: [4]int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with gap",
			input:    [4]int{0, 0, 2, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    [4]int{2, 0, 0, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "no change needed",
			input:    [4]int{4, 2, 0, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    0,
		},
		{
			name:     "empty row",
			input:    [4]int{0, 0, 0, 0},
			expected: [4]int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "single tile",
			input:    [4]int{0, 4, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, score := slideRow(tt.input)
			if result != tt.expected {
				t.Errorf("slideRow(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideRow(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}


func TestSlideDirections(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir   Direction
		want  Board
		score int
	}{
		{DirLeft, Board{{4, 0, 0, 0}, {8, 0, 0, 0}, {4, 4, 0, 0}, {2, 0, 0, 0}}, 20},
		{DirRight, Board{{0, 0, 0, 4}, {0, 0, 0, 8}, {0, 0, 4, 4}, {0, 0, 0, 2}}, 20},
		{DirUp, Board{{2, 4, 4, 4}, {4, 0, 2, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}}, 8},
		{DirDown, Board{{0, 0, 0, 0}, {2, 0, 0, 0}, {4, 0, 4, 0}, {2, 4, 2, 4}}, 8},
	}
	for _, tt := range tests {
		move := Slide(board, tt.dir)
		if move.Board != tt.want {
			t.Errorf("Slide(%d): got\n%v\nwant\n%v", tt.dir, move.Board, tt.want)
		}
		if move.Score != tt.score {
			t.Errorf("Slide(%d) score = %d, want %d", tt.dir, move.Score, tt.score)
		}
		if !move.Changed {
			t.Errorf("Slide(%d) should report a change", tt.dir)
		}
	}
}

func TestSlideMergedMask(t *testing.T) {
	board := Board{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}
	move := Slide(board, DirDown)
	var want Mask
	want[3][1] = true
	want[3][3] = true
	if move.Merged != want {
		t.Errorf("Merged = %v, want %v", move.Merged, want)
	}

	move = Slide(Board{{2, 2, 2, 0}}, DirRight)
	if move.Board[0] != [BoardSize]int{0, 0, 2, 4} || !move.Merged[0][3] || move.Merged[0][2] {
		t.Errorf("right merge: row %v, mask %v", move.Board[0], move.Merged[0])
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	board := Board{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if Slide(board, DirLeft).Changed {
		t.Error("Slide left should not change already left-aligned tiles")
	}

	g, h := start(ModeCampaign)
	g.board = board
	step(g, h, core.ButtonLeft)
	if g.board != board {
		t.Errorf("a move that changed nothing spawned a tile:\n%v", g.board)
	}
}

func TestGameOver(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	if !IsGameOver(board) {
		t.Error("Board with no moves should be game over")
	}

	board[0][1] = 2
	if IsGameOver(board) {
		t.Error("Board with possible merge should not be game over")
	}

	board[0][1] = 0
	if IsGameOver(board) {
		t.Error("Board with empty cell should not be game over")
	}
}

func start(mode Mode) (*Game, *gametest.Host) {
	h := gametest.NewHost()
	g := NewSeeded(mode, 42)
	g.Init(h)
	return g, h
}

func step(g *Game, h *gametest.Host, buttons ...core.Button) {
	for _, b := range buttons {
		h.Press(b)
	}
	g.Update()
	h.EndFrame()
}

func TestDeterministicSpawn(t *testing.T) {
	g1, _ := start(ModeCampaign)
	g2, _ := start(ModeCampaign)
	if g1.board != g2.board {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", g1.board, g2.board)
	}
	if n := BoardSize*BoardSize - len(EmptyCells(g1.board)); n != 2 {
		t.Errorf("initial board has %d tiles, want 2", n)
	}
}

func TestCampaignProgression(t *testing.T) {
	g, h := start(ModeCampaign)
	g.board = Board{{128, 0, 0, 0}}

	step(g, h, core.ButtonDown)
	if !g.levelCleared {
		t.Fatal("Should detect level cleared when target tile exists")
	}

	g.clearTicks = levelClearTicks - 1
	step(g, h)
	if g.levelIndex != 1 {
		t.Errorf("Should advance to level 2, got level %d", g.levelIndex+1)
	}
	if g.currentTarget != campaign[1].target {
		t.Errorf("target = %d, want %d", g.currentTarget, campaign[1].target)
	}
}

func TestCampaignWin(t *testing.T) {
	g, h := start(ModeCampaign)
	g.score = 99
	g.levelIndex = len(campaign) - 1
	g.levelCleared = true
	g.clearTicks = levelClearTicks - 1

	step(g, h)
	if !g.won {
		t.Fatal("expected the campaign to be won")
	}
	if len(h.Scores) != 1 || h.Scores[0] != 99 {
		t.Errorf("Scores = %v, want [99]", h.Scores)
	}
}

func TestEndlessModeNoWin(t *testing.T) {
	g, h := start(ModeEndless)
	g.board = Board{{8192, 0, 0, 0}}

	step(g, h, core.ButtonDown)
	if g.levelCleared {
		t.Error("Endless mode should not have level cleared")
	}
	if g.won {
		t.Error("Endless mode should not have win state")
	}
}

func TestGameOverRecordsScore(t *testing.T) {
	g, h := start(ModeCampaign)
	g.score = 50
	g.board = Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 8},
		{16, 2, 0, 32},
	}

	step(g, h, core.ButtonLeft)
	if !g.gameOver {
		t.Fatalf("expected game over:\n%v", g.board)
	}
	if len(h.Scores) != 1 || h.Scores[0] != 50 {
		t.Fatalf("Scores = %v, want [50]", h.Scores)
	}

	g.Draw()
	if !h.Contains("GAME OVER") {
		t.Errorf("overlay missing:\n%s", h.Screen())
	}

	step(g, h, core.ButtonA)
	if g.gameOver || g.score != 0 {
		t.Errorf("A should start a new run: gameOver %v, score %d", g.gameOver, g.score)
	}
	if len(h.Scores) != 1 {
		t.Errorf("Scores = %v, the finished run was reported again", h.Scores)
	}
}

func TestPause(t *testing.T) {
	g, h := start(ModeCampaign)
	board := g.board
	step(g, h, core.ButtonStart)
	step(g, h, core.ButtonLeft)
	step(g, h, core.ButtonUp)
	if g.board != board {
		t.Error("board changed while paused")
	}
	if g.Phase() != PhasePaused {
		t.Errorf("Phase() = %d, want paused", g.Phase())
	}
	g.Draw()
	if !h.Contains("PAUSED") {
		t.Errorf("overlay missing:\n%s", h.Screen())
	}
}

func TestDraw(t *testing.T) {
	g, h := start(ModeCampaign)
	g.board = Board{{2, 0, 0, 0}, {0, 1024, 0, 0}}
	g.flash = flash{}
	g.Draw()

	for _, want := range []string{"2048", "Score: 0", "Campaign", "Goal 128", "1024"} {
		if !h.Contains(want) {
			t.Errorf("screen missing %q:\n%s", want, h.Screen())
		}
	}
	cell := h.Screen().Get(boardX+cellWidth+1, boardY+cellHeight+1)
	if cell.Bg != core.ColorBlue {
		t.Errorf("1024 tile background = %s, want blue", cell.Bg)
	}
}

func TestFlashHighlightsMerges(t *testing.T) {
	g, h := start(ModeCampaign)
	g.board = Board{{2, 2, 0, 0}}

	step(g, h, core.ButtonLeft)
	g.Draw()
	if bg := h.Screen().Get(boardX+1, boardY+1).Bg; bg != core.ColorCyan {
		t.Errorf("merged tile background = %s, want cyan", bg)
	}

	for range flashTicks {
		step(g, h)
	}
	g.Draw()
	if bg := h.Screen().Get(boardX+1, boardY+1).Bg; bg != core.ColorWhite {
		t.Errorf("background after the flash = %s, want white", bg)
	}
}

func TestMaxTile(t *testing.T) {
	board := Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}
	if got := MaxTile(board); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
}

func TestEmptyCells(t *testing.T) {
	board := Board{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}
	cells := EmptyCells(board)
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != (Cell{X: 1, Y: 0}) {
		t.Errorf("first empty cell = %+v, want {1 0}", cells[0])
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	// [4, 4, 4, 4] sliding left should become [8, 8, 0, 0], not [16, 0, 0, 0]
	row := [4]int{4, 4, 4, 4}
	result, merged, score := slideRow(row)

	expected := [4]int{8, 8, 0, 0}
	if result != expected {
		t.Errorf("slideRow(%v) = %v, want %v (one merge per tile per move)", row, result, expected)
	}
	if merged != [4]bool{true, true, false, false} {
		t.Errorf("merged = %v", merged)
	}
	if score != 16 {
		t.Errorf("slideRow(%v) score = %d, want 16", row, score)
	}
}

func TestCampaignStart(t *testing.T) {
	g, _ := start(ModeCampaign)
	if g.levelIndex != 0 || g.currentTarget != 128 {
		t.Errorf("level %d target %d, want level 1 target 128", g.levelIndex+1, g.currentTarget)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %d, want playing", g.Phase())
	}
}

func TestStageAt(t *testing.T) {
	if len(campaign) != 10 {
		t.Fatalf("campaign has %d stages, want 10", len(campaign))
	}
	for i := 1; i < len(campaign); i++ {
		if campaign[i].target < campaign[i-1].target || campaign[i].spawn4 < campaign[i-1].spawn4 {
			t.Errorf("stage %d %+v is easier than stage %d %+v", i+1, campaign[i], i, campaign[i-1])
		}
	}
	if got := stageAt(-1); got != campaign[0] {
		t.Errorf("stageAt(-1) = %+v, want the first stage", got)
	}
	if got := stageAt(99); got != campaign[len(campaign)-1] {
		t.Errorf("stageAt(99) = %+v, want the last stage", got)
	}
	if !lastStage(len(campaign)-1) || lastStage(0) {
		t.Error("lastStage misreports the final stage")
	}
}
