package autoplay

import (
	"context"
	"errors"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

func TestFirstMovable(t *testing.T) {
	tests := []struct {
		name  string
		board engine.Grid
		want  engine.Direction
	}{
		{
			name:  "left possible",
			board: engine.Grid{{0, 2, 0, 0}},
			want:  engine.Left,
		},
		{
			name: "left packed, right moves",
			board: engine.Grid{
				{2, 4, 0, 0},
			},
			want: engine.Right,
		},
		{
			name: "only vertical moves",
			board: engine.Grid{
				{2, 4, 8, 16},
				{4, 8, 16, 32},
				{2, 4, 8, 16},
				{2, 8, 16, 32},
			},
			want: engine.Up,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (FirstMovable{}).Next(tt.board); got != tt.want {
				t.Errorf("Next() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGreedyPrefersLargestGain(t *testing.T) {
	// Horizontal merges give 4; vertical merges give 64.
	board := engine.Grid{
		{2, 2, 0, 32},
		{0, 0, 0, 32},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if got := (Greedy{}).Next(board); got != engine.Up {
		t.Errorf("Next() = %s, want up", got)
	}

	// No merges anywhere: first direction that moves wins the tie.
	plain := engine.Grid{{0, 2, 0, 0}}
	if got := (Greedy{}).Next(plain); got != engine.Left {
		t.Errorf("Next() on tie = %s, want left", got)
	}
}

func TestStrategyByName(t *testing.T) {
	for _, name := range []string{"first", "Greedy", " greedy "} {
		if _, err := StrategyByName(name); err != nil {
			t.Errorf("StrategyByName(%q) failed: %v", name, err)
		}
	}

	_, err := StrategyByName("expectimax")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("StrategyByName(expectimax) error = %v, want ErrUnknownStrategy", err)
	}

	names := StrategyNames()
	if len(names) != 2 || names[0] != "first" || names[1] != "greedy" {
		t.Errorf("StrategyNames() = %v", names)
	}
}

func TestRunEndsEveryGame(t *testing.T) {
	results, sum, err := Run(context.Background(), Config{
		Games:    5,
		Seed:     42,
		Strategy: Greedy{},
		Tracer:   telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(results) != 5 || sum.Games != 5 {
		t.Fatalf("got %d results / %d summarized, want 5", len(results), sum.Games)
	}
	if sum.Wins+sum.Losses != 5 || sum.Capped != 0 {
		t.Errorf("Wins %d + Losses %d should be 5 with no cap (capped %d)", sum.Wins, sum.Losses, sum.Capped)
	}
	for _, r := range results {
		if !r.Status.Terminal() {
			t.Errorf("game %d ended with status %s", r.Game, r.Status)
		}
		if r.Moves == 0 || r.MaxTile < 4 {
			t.Errorf("game %d looks unplayed: %+v", r.Game, r)
		}
	}
	if sum.Strategy != "greedy" {
		t.Errorf("Strategy = %q, want greedy", sum.Strategy)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Games: 3, Seed: 7, Tracer: telemetry.NoopTracer()}

	a, _, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	b, _, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Errorf("game %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRunMaxMoves(t *testing.T) {
	results, sum, err := Run(context.Background(), Config{
		Games:    2,
		Seed:     3,
		MaxMoves: 5,
		Tracer:   telemetry.NoopTracer(),
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	for _, r := range results {
		if r.Moves != 5 || r.Status != engine.StatusPlaying {
			t.Errorf("game %d: moves %d status %s, want 5 playing", r.Game, r.Moves, r.Status)
		}
	}
	if sum.Capped != 2 {
		t.Errorf("Capped = %d, want 2", sum.Capped)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := Run(ctx, Config{Games: 3, Seed: 1, Tracer: telemetry.NoopTracer()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no finished games, got %d", len(results))
	}
}

func TestRunEmitsSpanPerGame(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background())

	_, _, err := Run(context.Background(), Config{
		Games:  3,
		Seed:   9,
		Tracer: tp.Tracer("test"),
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}
	for _, s := range spans {
		if s.Name() != "autoplay.game" {
			t.Errorf("span name = %q, want autoplay.game", s.Name())
		}
		found := false
		for _, kv := range s.Attributes() {
			if kv.Key == "game.status" {
				found = true
			}
		}
		if !found {
			t.Errorf("span %q missing game.status", s.Name())
		}
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize("first", []Result{
		{Score: 100, MaxTile: 64, Status: engine.StatusLose, Moves: 10},
		{Score: 300, MaxTile: 2048, Status: engine.StatusWin, Moves: 30},
		{Score: 200, MaxTile: 64, Status: engine.StatusPlaying, Moves: 20},
	})

	if sum.Games != 3 || sum.Wins != 1 || sum.Losses != 1 || sum.Capped != 1 {
		t.Errorf("counts = %+v", sum)
	}
	if sum.BestScore != 300 || sum.AvgScore != 200 {
		t.Errorf("BestScore %d AvgScore %v, want 300 200", sum.BestScore, sum.AvgScore)
	}
	if sum.BestTile != 2048 || sum.Tiles[64] != 2 {
		t.Errorf("BestTile %d Tiles %v", sum.BestTile, sum.Tiles)
	}
	if sum.TotalMoves != 60 {
		t.Errorf("TotalMoves = %d, want 60", sum.TotalMoves)
	}

	empty := Summarize("first", nil)
	if empty.AvgScore != 0 || empty.Games != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
