package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakepit/internal/platform/tui"
	"github.com/vovakirdan/snakepit/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past sessions",
	Long: `Open an interactive browser over the session history.

Tab switches between the top-score and most-recent listings.

Examples:
  snakepit history
  snakepit history --db ./snakepit.db`,
	Run: runHistory,
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
