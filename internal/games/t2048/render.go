package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

const (
	cellWidth  = 6 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)

	boardW = BoardSize*cellWidth + 1
	boardH = BoardSize*cellHeight + 1

	screenColumns = 32
	screenRows    = 14

	boardX = (screenColumns - boardW) / 2
	boardY = 4
)

// tileColors gives the foreground and background of a tile by value.
func tileColors(value int) (fg, bg core.Color) {
	switch {
	case value <= 4:
		return core.ColorBlack, core.ColorWhite
	case value <= 16:
		return core.ColorBlack, core.ColorYellow
	case value <= 64:
		return core.ColorWhite, core.ColorRed
	case value <= 256:
		return core.ColorWhite, core.ColorMagenta
	case value <= 1024:
		return core.ColorWhite, core.ColorBlue
	default:
		return core.ColorBlack, core.ColorGreen
	}
}

// Draw renders the HUD, the board and any overlay.
func (g *Game) Draw() {
	g.host.Clear(core.ColorBlack)
	g.drawHUD()
	g.drawBoard()
	g.drawOverlays()
}

func (g *Game) drawHUD() {
	p := g.paint
	p.Center(screenColumns, 0, "2048", core.ColorYellow, core.ColorBlack)

	p.Text(boardX, 1, fmt.Sprintf("Score: %d", g.score), core.ColorWhite, core.ColorBlack)
	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("L%d/%d  Goal %d", g.levelIndex+1, len(campaign), g.currentTarget)
	} else {
		info = fmt.Sprintf("Max: %d", MaxTile(g.board))
	}
	p.Text(max(boardX, boardX+boardW-len(info)), 2, info, core.ColorWhite, core.ColorBlack)

	mode := "Campaign"
	if g.mode == ModeEndless {
		mode = "Endless"
	}
	p.Text(boardX, 2, mode, core.ColorCyan, core.ColorBlack)
}

func (g *Game) drawBoard() {
	p := g.paint
	grid := core.ColorWhite
	for y := range BoardSize + 1 {
		py := boardY + y*cellHeight
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			p.Cell(px, py, '+', grid, core.ColorBlack)
			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					p.Cell(px+i, py, '-', grid, core.ColorBlack)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					p.Cell(px, py+i, '|', grid, core.ColorBlack)
				}
			}
		}
	}

	for y := range BoardSize {
		for x := range BoardSize {
			val := g.board[y][x]
			if val == 0 {
				continue
			}
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			fg, bg := tileColors(val)
			if g.flash.merge(x, y) || g.flash.spawn(x, y) {
				fg, bg = core.ColorBlack, core.ColorCyan
			}
			p.Fill(cellX, cellY, cellWidth-1, cellHeight-1, bg)

			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			p.Text(cellX+padLeft, cellY, valStr, fg, bg)
		}
	}

	p.Center(screenColumns, boardY+boardH, "Arrows/WASD move  Start pause", core.ColorWhite, core.ColorBlack)
}

func (g *Game) drawOverlays() {
	switch g.Phase() {
	case PhasePaused:
		g.drawOverlay("PAUSED", "Start resumes")
	case PhaseLevelCleared:
		target := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if lastStage(g.levelIndex) {
			g.drawOverlay(target, "Final level!")
		} else {
			g.drawOverlay(target, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
	case PhaseWon:
		g.drawOverlay("CAMPAIGN COMPLETE!", "A plays again")
	case PhaseOver:
		g.drawOverlay("GAME OVER", fmt.Sprintf("Max tile: %d", MaxTile(g.board)), "A plays again")
	}
}

// drawOverlay draws a box with centered lines over the board.
func (g *Game) drawOverlay(lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}
	boxW := min(maxLen+4, screenColumns)
	boxH := len(lines) + 2
	x := (screenColumns - boxW) / 2
	y := boardY + (boardH-boxH)/2

	g.paint.Fill(x, y, boxW, boxH, core.ColorBlack)
	g.paint.Box(x, y, boxW, boxH, core.ColorYellow, core.ColorBlack)
	for i, line := range lines {
		g.paint.Center(screenColumns, y+1+i, line, core.ColorWhite, core.ColorBlack)
	}
}
