// snakepit is a terminal survival snake game with a toroidal board,
// traps, and periodically reshaped obstacles.
//
// Usage:
//
//	snakepit play            - Play in the current terminal
//	snakepit serve           - Start SSH server for remote play
//	snakepit history         - Browse past sessions
//	snakepit stats           - Print aggregate statistics
//	snakepit reset           - Discard the saved game
//
// Global flags:
//
//	--fps <rate>    - Render frame rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible layouts
//	--db <path>     - Set database path (default: ~/.snakepit/snakepit.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakepit",
	Short: "Snakepit - survival snake in your terminal",
	Long: `Snakepit is a terminal survival snake game. The board wraps around at
the edges, traps appear at random and halve your snake, and the obstacle
layout reshapes itself every so often. Games are saved automatically and
resume where you left off.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  history  - Browse past sessions
  stats    - Print aggregate statistics
  reset    - Discard the saved game

Examples:
  snakepit play
  snakepit play --difficulty hard
  snakepit serve --ssh :2222
  snakepit history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Render frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakepit/snakepit.db", "Path to session database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}
