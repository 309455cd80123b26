// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048                     - Play (same as t2048 play)
//	t2048 play                - Play a game
//	t2048 scores              - Show score history
//	t2048 sim                 - Play games headlessly with a strategy
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible tile spawns
//	--db <path>        - Set database path (default from config: ~/.t2048/scores.db)
//	--config <path>    - Path to a config YAML
//	--log-file <path>  - Log destination (default from config: ~/.t2048/t2048.log)
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the classic 2048 puzzle for the terminal. Slide the board
in one of four directions; equal tiles merge once per move. Reach a 2048
tile to win; fill the board with no merges left and the game is over.

Available commands:
  play     - Play a game (default)
  scores   - View score history
  sim      - Play games headlessly with a strategy

Examples:
  t2048
  t2048 play --seed 42
  t2048 scores --limit 20
  t2048 sim --games 100 --strategy greedy`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Path to log file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
