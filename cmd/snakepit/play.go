package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakepit/internal/config"
	"github.com/vovakirdan/snakepit/internal/game"
	"github.com/vovakirdan/snakepit/internal/platform/tui"
	"github.com/vovakirdan/snakepit/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoResume   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game in the current terminal. If a saved game exists it is
resumed; press Enter to continue it.

Controls:
  Arrows/WASD/HJKL - Steer
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit (the game is saved)

Difficulty options:
  easy   - Fewer traps and obstacles, gentler speed curve
  normal - The default balance
  hard   - More hazards, faster speed curve
  fixed  - No speed progression

Examples:
  snakepit play
  snakepit play --difficulty hard
  snakepit play --config ./my-board.yaml
  snakepit play --no-resume`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoResume, "no-resume", false, "Discard any saved game and start fresh")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !config.ValidPreset(preset) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard, fixed)\n", flagDifficulty)
			os.Exit(1)
		}
		config.ApplyPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "snakepit"})

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	if flagNoResume && store != nil {
		if err := store.ClearSavedState(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not discard saved game: %v\n", err)
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var persistence game.Persistence
	if store != nil {
		persistence = store
	}
	session := game.NewSession(cfg, seed, persistence, logger)

	runErr := tui.Run(session, width, height, flagFPS)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
