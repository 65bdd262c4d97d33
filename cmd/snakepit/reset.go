package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakepit/internal/storage"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved game",
	Long: `Discard the saved game so the next 'snakepit play' starts fresh.

With --history the whole session history is cleared as well.

Examples:
  snakepit reset
  snakepit reset --history`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also clear the session history")
}

func runReset(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.ClearSavedState(); err != nil {
		fmt.Fprintf(os.Stderr, "Error discarding saved game: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Saved game discarded.")

	if flagResetHistory {
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session history cleared.")
	}
}
