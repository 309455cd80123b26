// Package autoplay plays complete 2048 games headlessly with a move strategy.
package autoplay

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ErrUnknownStrategy is returned by StrategyByName.
var ErrUnknownStrategy = errors.New("autoplay: unknown strategy")

// Strategy picks the next direction for a board.
// It may return a direction that does not move; the runner falls back to
// the first one that does.
type Strategy interface {
	Name() string
	Next(b engine.Grid) engine.Direction
}

// FirstMovable tries directions in engine order and takes the first that moves.
type FirstMovable struct{}

func (FirstMovable) Name() string { return "first" }

func (FirstMovable) Next(b engine.Grid) engine.Direction {
	if d, ok := firstMovable(b); ok {
		return d
	}
	return engine.Left
}

// Greedy takes the direction with the largest immediate merge gain.
// Ties go to the earlier direction in engine order.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Next(b engine.Grid) engine.Direction {
	best, bestGain := engine.Left, -1
	for _, d := range engine.Directions {
		_, gain, moved := engine.Slide(b, d)
		if moved && gain > bestGain {
			best, bestGain = d, gain
		}
	}
	return best
}

func firstMovable(b engine.Grid) (engine.Direction, bool) {
	for _, d := range engine.Directions {
		if _, _, moved := engine.Slide(b, d); moved {
			return d, true
		}
	}
	return engine.Left, false
}

var strategies = map[string]Strategy{
	FirstMovable{}.Name(): FirstMovable{},
	Greedy{}.Name():       Greedy{},
}

// StrategyByName looks up a built-in strategy.
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
	return s, nil
}

// StrategyNames returns the built-in strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
