// Package engine implements the 2048 grid engine: directional moves,
// the single-pass merge rule, random tile spawns and the win/lose state machine.
// It has no UI or I/O dependencies; callers drive it through commands and
// re-read its accessors after each call.
package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidInitialState is returned by FromRows for a board that is not 4x4
// or holds negative values.
var ErrInvalidInitialState = errors.New("engine: invalid initial state")

// Game holds one 2048 episode. It is not safe for concurrent use.
type Game struct {
	grid   Grid
	score  int
	status Status
	moves  int
	rng    Source
}

// Option configures a Game at construction.
type Option func(*Game)

// WithGrid sets the initial board. Values are trusted as-is.
func WithGrid(g Grid) Option {
	return func(gm *Game) {
		gm.grid = g
	}
}

// WithSource sets the spawn randomness.
func WithSource(src Source) Option {
	return func(gm *Game) {
		if src != nil {
			gm.rng = src
		}
	}
}

// WithSeed seeds the default source. Zero means time-based.
func WithSeed(seed int64) Option {
	return func(gm *Game) {
		gm.rng = NewSource(seed)
	}
}

// New creates an idle game. The board is empty unless WithGrid is given;
// no tiles are spawned until Start.
func New(opts ...Option) *Game {
	g := &Game{status: StatusIdle}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewSource(0)
	}
	return g
}

// FromRows creates an idle game from a slice-of-slices board.
func FromRows(rows [][]int, opts ...Option) (*Game, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrInvalidInitialState, len(rows), Size)
	}

	var grid Grid
	for r, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidInitialState, r, len(row), Size)
		}
		for c, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: negative value %d at (%d,%d)", ErrInvalidInitialState, v, r, c)
			}
			grid[r][c] = v
		}
	}

	return New(append([]Option{WithGrid(grid)}, opts...)...), nil
}

// Start clears the board, spawns two tiles and begins play.
func (g *Game) Start() {
	g.score = 0
	g.moves = 0
	g.grid = Grid{}
	g.spawnTile()
	g.spawnTile()
	g.status = StatusPlaying
}

// Restart is Start.
func (g *Game) Restart() {
	g.Start()
}

// MoveLeft slides tiles left. Returns true if any cell changed.
func (g *Game) MoveLeft() bool { return g.Move(Left) }

// MoveRight slides tiles right. Returns true if any cell changed.
func (g *Game) MoveRight() bool { return g.Move(Right) }

// MoveUp slides tiles up. Returns true if any cell changed.
func (g *Game) MoveUp() bool { return g.Move(Up) }

// MoveDown slides tiles down. Returns true if any cell changed.
func (g *Game) MoveDown() bool { return g.Move(Down) }

// Move slides tiles in dir. When the board changes a tile is spawned and
// the win/lose state is evaluated. Moves after a win or loss are ignored
// until Start.
func (g *Game) Move(dir Direction) bool {
	if g.status.Terminal() {
		return false
	}

	next, gained, changed := Slide(g.grid, dir)
	if !changed {
		return false
	}

	g.grid = next
	g.score += gained
	g.moves++
	g.afterMove()
	return true
}

// afterMove spawns a tile then checks win before lose.
func (g *Game) afterMove() {
	g.spawnTile()

	if Contains(g.grid, WinTile) {
		g.status = StatusWin
		return
	}

	if IsStuck(g.grid) {
		g.status = StatusLose
	}
}

// spawnTile places a 2 (90%) or 4 in a uniformly chosen empty cell.
// The empty list is rebuilt on every call.
func (g *Game) spawnTile() {
	empty := EmptyCells(g.grid)
	if len(empty) == 0 {
		return
	}

	cell := empty[g.rng.Intn(len(empty))]
	value := 4
	if g.rng.Float64() < spawn2Prob {
		value = 2
	}
	g.grid[cell.Row][cell.Col] = value
}

// State returns a copy of the board.
func (g *Game) State() Grid {
	return g.grid
}

// Score returns the accumulated merge score.
func (g *Game) Score() int {
	return g.score
}

// Status returns the lifecycle status.
func (g *Game) Status() Status {
	return g.status
}

// Moves returns the number of successful moves since Start.
func (g *Game) Moves() int {
	return g.moves
}
