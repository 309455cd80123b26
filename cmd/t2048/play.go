package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/telemetry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a 2048 session. The board stays empty until you press Enter.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  Enter/Space       - Start (first game)
  R                 - Restart at any time
  Ctrl+S            - Save a text screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --config ./my-theme.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	e, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed

	// Open score storage
	store, err := e.openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		e.logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Logger: e.logger,
		Tracer: telemetry.Tracer("tui"),
		Theme:  e.cfg.Theme,
		Keys:   tui.DefaultKeyMap().WithExtra(e.cfg.ExtraKeys()),
	}
	if store != nil {
		opts.Store = store
	}

	game := engine.New(engine.WithSeed(cfg.Seed))
	e.logger.Debug("session starting", "seed", cfg.Seed, "width", cfg.ScreenW, "height", cfg.ScreenH)

	runErr := tui.Run(game, cfg, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	e.Close(ctx)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
