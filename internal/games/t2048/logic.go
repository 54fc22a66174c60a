package t2048

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the board dimension.
const BoardSize = 4

// Board represents a 4x4 game board indexed [y][x]. Zero is an empty cell.
type Board [BoardSize][BoardSize]int

// Mask marks cells of a board.
type Mask [BoardSize][BoardSize]bool

// Move is the outcome of sliding a board.
type Move struct {
	Board   Board
	Score   int  // sum of the tiles produced by merges
	Changed bool // false means the move is not allowed
	Merged  Mask // cells holding a tile produced by a merge
}

// slideRow slides and merges a single row to the left. A tile produced by a
// merge does not merge again in the same move.
func slideRow(row [BoardSize]int) (result [BoardSize]int, merged [BoardSize]bool, score int) {
	writePos := 0

	for i := range BoardSize {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && result[writePos-1] == row[i] && !merged[writePos-1] {
			result[writePos-1] *= 2
			merged[writePos-1] = true
			score += result[writePos-1]
		} else {
			result[writePos] = row[i]
			writePos++
		}
	}

	return result, merged, score
}

// orient maps a board so that dir becomes a slide to the left; unorient
// undoes it. The same pair is applied to the merge mask.
func orient[T int | bool](b [BoardSize][BoardSize]T, dir Direction) [BoardSize][BoardSize]T {
	switch dir {
	case DirRight:
		return mirror(b)
	case DirUp:
		return transpose(b)
	case DirDown:
		return mirror(transpose(b))
	default:
		return b
	}
}

func unorient[T int | bool](b [BoardSize][BoardSize]T, dir Direction) [BoardSize][BoardSize]T {
	switch dir {
	case DirRight:
		return mirror(b)
	case DirUp:
		return transpose(b)
	case DirDown:
		return transpose(mirror(b))
	default:
		return b
	}
}

func mirror[T int | bool](b [BoardSize][BoardSize]T) [BoardSize][BoardSize]T {
	var out [BoardSize][BoardSize]T
	for y := range BoardSize {
		for x := range BoardSize {
			out[y][x] = b[y][BoardSize-1-x]
		}
	}
	return out
}

func transpose[T int | bool](b [BoardSize][BoardSize]T) [BoardSize][BoardSize]T {
	var out [BoardSize][BoardSize]T
	for y := range BoardSize {
		for x := range BoardSize {
			out[y][x] = b[x][y]
		}
	}
	return out
}

// Slide performs a move in the given direction.
func Slide(board Board, dir Direction) Move {
	if dir < DirUp || dir > DirRight {
		return Move{Board: board}
	}

	in := orient(board, dir)
	var out Board
	var merged Mask
	score := 0
	for y := range BoardSize {
		row, m, s := slideRow(in[y])
		out[y] = row
		merged[y] = m
		score += s
	}

	result := Move{
		Board:  unorient(out, dir),
		Score:  score,
		Merged: unorient(merged, dir),
	}
	result.Changed = result.Board != board
	return result
}

// Cell is a board coordinate.
type Cell struct{ X, Y int }

// EmptyCells returns coordinates of all empty cells in row order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return len(EmptyCells(board)) > 0 || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			maxVal = max(maxVal, board[y][x])
		}
	}
	return maxVal
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}
