package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show score history",
	Long: `Display the best (or most recent) finished games and overall stats.

Examples:
  t2048 scores
  t2048 scores --limit 20
  t2048 scores --recent
  t2048 scores -i
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show most recent games instead of best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
}

func runScores(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.Close(ctx)

	store, err := e.openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	if store == nil {
		fmt.Println("Score history is disabled in config.")
		return
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		e.logger.Info("score history cleared")
		fmt.Println("Score history cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(store, flagLimit, flagRecent); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, limit int, recent bool) error {
	title := "High Scores"
	fetch := store.TopScores
	if recent {
		title = "Recent Games"
		fetch = store.Recent
	}

	results, err := fetch(limit)
	if err != nil {
		return err
	}

	fmt.Printf("%s - 2048\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Max", "Result", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "---", "------", "-----", "----")

	for i, r := range results {
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6s  %-6d  %s\n", i+1, r.Score, r.MaxTile, r.Status, r.Moves, dateStr)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Games: %d  Wins: %d  Best: %d  Average: %.0f  Best tile: %d\n",
		stats.Games, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestTile)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
