package autoplay

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

// Config controls a batch of games.
type Config struct {
	Games    int      // Number of games; values below 1 mean 1
	Seed     int64    // Base seed; 0 means time-based
	Strategy Strategy // Defaults to FirstMovable
	MaxMoves int      // Per-game move cap; 0 means unlimited

	Tracer trace.Tracer // Defaults to telemetry.Tracer("autoplay")
	Logger *log.Logger  // Optional
}

// Result is the outcome of one game.
type Result struct {
	Game    int
	Seed    int64
	Score   int
	MaxTile int
	Status  engine.Status // StatusPlaying if the move cap was hit
	Moves   int
}

// Summary aggregates a batch.
type Summary struct {
	Strategy   string
	Games      int
	Wins       int
	Losses     int
	Capped     int
	BestScore  int
	AvgScore   float64
	BestTile   int
	TotalMoves int
	Tiles      map[int]int // max tile -> games reaching it
}

// Run plays cfg.Games games and returns every result plus a summary.
// On cancellation it returns what finished so far with ctx.Err().
func Run(ctx context.Context, cfg Config) ([]Result, Summary, error) {
	if cfg.Games < 1 {
		cfg.Games = 1
	}
	if cfg.Strategy == nil {
		cfg.Strategy = FirstMovable{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = telemetry.Tracer("autoplay")
	}
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	seeds := rand.New(rand.NewSource(base))

	results := make([]Result, 0, cfg.Games)
	for i := range cfg.Games {
		seed := seeds.Int63()
		if seed == 0 {
			seed = 1
		}

		res, err := playOne(ctx, cfg, i, seed)
		if err != nil {
			return results, Summarize(cfg.Strategy.Name(), results), err
		}
		results = append(results, res)

		if cfg.Logger != nil {
			cfg.Logger.Debug("game finished",
				"game", i, "seed", seed, "score", res.Score,
				"max_tile", res.MaxTile, "status", res.Status, "moves", res.Moves)
		}
	}

	return results, Summarize(cfg.Strategy.Name(), results), nil
}

func playOne(ctx context.Context, cfg Config, index int, seed int64) (Result, error) {
	ctx, span := cfg.Tracer.Start(ctx, "autoplay.game",
		trace.WithAttributes(
			attribute.Int("game.index", index),
			attribute.Int64("game.seed", seed),
			attribute.String("game.strategy", cfg.Strategy.Name()),
		),
	)
	defer span.End()

	g := engine.New(engine.WithSeed(seed))
	g.Start()

	err := Play(ctx, g, cfg.Strategy, cfg.MaxMoves)

	snap := g.Snapshot()
	res := Result{
		Game:    index,
		Seed:    seed,
		Score:   snap.Score,
		MaxTile: snap.MaxTile,
		Status:  snap.Status,
		Moves:   snap.Moves,
	}
	span.SetAttributes(
		attribute.Int("game.score", res.Score),
		attribute.Int("game.max_tile", res.MaxTile),
		attribute.String("game.status", res.Status.String()),
		attribute.Int("game.moves", res.Moves),
	)
	if err != nil {
		span.RecordError(err)
	}
	return res, err
}

// Play drives g with s until the game ends, maxMoves is reached (0 = no cap)
// or ctx is cancelled. g must already be started.
func Play(ctx context.Context, g *engine.Game, s Strategy, maxMoves int) error {
	for !g.Status().Terminal() {
		if maxMoves > 0 && g.Moves() >= maxMoves {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		board := g.State()
		if g.Move(s.Next(board)) {
			continue
		}
		d, ok := firstMovable(board)
		if !ok {
			return nil
		}
		g.Move(d)
	}
	return nil
}

// Summarize aggregates results.
func Summarize(strategy string, results []Result) Summary {
	sum := Summary{
		Strategy: strategy,
		Games:    len(results),
		Tiles:    make(map[int]int),
	}

	total := 0
	for _, r := range results {
		switch r.Status {
		case engine.StatusWin:
			sum.Wins++
		case engine.StatusLose:
			sum.Losses++
		default:
			sum.Capped++
		}
		total += r.Score
		sum.TotalMoves += r.Moves
		sum.BestScore = max(sum.BestScore, r.Score)
		sum.BestTile = max(sum.BestTile, r.MaxTile)
		sum.Tiles[r.MaxTile]++
	}

	if len(results) > 0 {
		sum.AvgScore = float64(total) / float64(len(results))
	}
	return sum
}
