package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakepit/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics",
	Long: `Print the top sessions and aggregate statistics over all recorded play.

Examples:
  snakepit stats
  snakepit stats --db ./snakepit.db`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Snakepit statistics")
	fmt.Println()

	if stats.TotalSessions == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakepit play' to start the first one!")
		return
	}

	fmt.Printf("  Sessions:    %d (%d finished)\n", stats.TotalSessions, stats.FinishedSessions)
	fmt.Printf("  High score:  %d\n", stats.HighScore)
	fmt.Printf("  Food eaten:  %d\n", stats.TotalFoodEaten)
	fmt.Printf("  Traps hit:   %d\n", stats.TotalTrapHits)

	top, err := store.TopSessions(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
	if len(top) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-4s  %-8s  %-8s  %-20s  %s\n", "Rank", "Score", "Length", "Ended", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-20s  %s\n", "----", "-----", "------", "-----", "----")
	for i, e := range top {
		fmt.Printf("  %-4d  %-8d  %-8d  %-20s  %s\n",
			i+1, e.Score, e.SnakeLen, e.EndReason, e.StartedAt.Format("2006-01-02 15:04"))
	}
}
