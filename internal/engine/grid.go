package engine

// Size is the board dimension.
const Size = 4

// WinTile is the tile value that ends the game with a win.
const WinTile = 2048

// Grid is the 4x4 board. Row-major: Grid[row][col].
type Grid [Size][Size]int

// Line is a single row or column read in move order.
type Line [Size]int

// Direction is a move direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists all directions in the order strategies try them.
var Directions = [...]Direction{Left, Right, Up, Down}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// mergeLine compacts the line towards index 0 and merges equal neighbours
// in a single left-to-right pass. A merged value is not merged again.
// Returns the merged line and the sum of values created by merges.
func mergeLine(in Line) (Line, int) {
	tiles := make([]int, 0, Size)
	for _, v := range in {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	gained := 0
	for i := 0; i < len(tiles)-1; i++ {
		if tiles[i] != 0 && tiles[i] == tiles[i+1] {
			tiles[i] *= 2
			tiles[i+1] = 0
			gained += tiles[i]
		}
	}

	var out Line
	pos := 0
	for _, v := range tiles {
		if v != 0 {
			out[pos] = v
			pos++
		}
	}
	return out, gained
}

func reverse(l Line) Line {
	var out Line
	for i := range Size {
		out[i] = l[Size-1-i]
	}
	return out
}

// line reads row or column i in the order tiles travel for dir,
// so index 0 is the edge the tiles are pushed towards.
func (g *Grid) line(dir Direction, i int) Line {
	var l Line
	for j := range Size {
		switch dir {
		case Left:
			l[j] = g[i][j]
		case Right:
			l[j] = g[i][Size-1-j]
		case Up:
			l[j] = g[j][i]
		case Down:
			l[j] = g[Size-1-j][i]
		}
	}
	return l
}

// setLine is the inverse of line.
func (g *Grid) setLine(dir Direction, i int, l Line) {
	for j := range Size {
		switch dir {
		case Left:
			g[i][j] = l[j]
		case Right:
			g[i][Size-1-j] = l[j]
		case Up:
			g[j][i] = l[j]
		case Down:
			g[Size-1-j][i] = l[j]
		}
	}
}

// Slide applies a move to a copy of the board.
// Returns the new board, the score gained and whether any cell changed.
// No tile is spawned.
func Slide(g Grid, dir Direction) (Grid, int, bool) {
	if dir < Left || dir > Down {
		return g, 0, false
	}

	out := g
	total := 0
	changed := false
	for i := range Size {
		before := g.line(dir, i)
		after, gained := mergeLine(before)
		if after != before {
			changed = true
		}
		out.setLine(dir, i, after)
		total += gained
	}
	return out, total, changed
}

// Transpose swaps rows and columns.
func Transpose(g Grid) Grid {
	var out Grid
	for r := range Size {
		for c := range Size {
			out[r][c] = g[c][r]
		}
	}
	return out
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// IsFull reports whether no cell is empty.
func IsFull(g Grid) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// CanMerge reports whether any horizontally or vertically adjacent pair
// holds equal values. Raw values are compared, so two empty neighbours count;
// callers only rely on it for full boards.
func CanMerge(g Grid) bool {
	for r := range Size {
		for c := range Size - 1 {
			if g[r][c] == g[r][c+1] {
				return true
			}
		}
	}
	for c := range Size {
		for r := range Size - 1 {
			if g[r][c] == g[r+1][c] {
				return true
			}
		}
	}
	return false
}

// IsStuck reports whether the board is full with no merge left.
func IsStuck(g Grid) bool {
	return IsFull(g) && !CanMerge(g)
}

// Contains reports whether any cell equals v.
func Contains(g Grid, v int) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest value on the board.
func MaxTile(g Grid) int {
	best := 0
	for r := range Size {
		for c := range Size {
			best = max(best, g[r][c])
		}
	}
	return best
}

// Sum returns the total of all cell values.
func Sum(g Grid) int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// Count returns the number of non-empty cells.
func Count(g Grid) int {
	return Size*Size - len(EmptyCells(g))
}

// Rows returns the board as freshly allocated slices.
func (g Grid) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range Size {
		rows[r] = make([]int, Size)
		copy(rows[r], g[r][:])
	}
	return rows
}
