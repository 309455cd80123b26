package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/autoplay"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

var (
	flagGames    int
	flagStrategy string
	flagMaxMoves int
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play games headlessly with a strategy",
	Long: `Run complete games without a UI and print a summary.
Useful for checking the engine and comparing strategies.

Strategies:
  ` + strings.Join(autoplay.StrategyNames(), ", ") + `

Examples:
  t2048 sim
  t2048 sim --games 500 --strategy greedy --seed 1
  t2048 sim --games 10 --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	simCmd.Flags().StringVar(&flagStrategy, "strategy", "first", "Move strategy")
	simCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no cap)")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save finished games to score history")
}

func runSim(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	strategy, err := autoplay.StrategyByName(flagStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.Close(context.Background())

	results, sum, runErr := autoplay.Run(ctx, autoplay.Config{
		Games:    flagGames,
		Seed:     flagSeed,
		Strategy: strategy,
		MaxMoves: flagMaxMoves,
		Tracer:   telemetry.Tracer("autoplay"),
		Logger:   e.logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: stopped early: %v\n", runErr)
	}

	printSummary(sum)

	if flagRecord {
		if err := recordResults(e, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printSummary(sum autoplay.Summary) {
	fmt.Printf("Strategy: %s\n", sum.Strategy)
	fmt.Printf("Games: %d  Wins: %d  Losses: %d", sum.Games, sum.Wins, sum.Losses)
	if sum.Capped > 0 {
		fmt.Printf("  Capped: %d", sum.Capped)
	}
	fmt.Println()
	fmt.Printf("Best score: %d  Average: %.1f  Moves: %d\n", sum.BestScore, sum.AvgScore, sum.TotalMoves)
	fmt.Println()

	if len(sum.Tiles) == 0 {
		return
	}

	tiles := make([]int, 0, len(sum.Tiles))
	for t := range sum.Tiles {
		tiles = append(tiles, t)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Println("  Max tile  Games")
	for _, t := range tiles {
		fmt.Printf("  %-8d  %d\n", t, sum.Tiles[t])
	}
}

// recordResults saves finished games; capped games are skipped.
func recordResults(e *env, results []autoplay.Result) error {
	store, err := e.openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	saved := 0
	for _, r := range results {
		if !r.Status.Terminal() {
			continue
		}
		_, err := store.SaveResult(storage.GameResult{
			Score:   r.Score,
			MaxTile: r.MaxTile,
			Status:  r.Status.String(),
			Moves:   r.Moves,
		})
		if err != nil {
			return err
		}
		saved++
	}
	e.logger.Info("recorded simulated games", "count", saved)
	fmt.Printf("Recorded %d games.\n", saved)
	return nil
}
