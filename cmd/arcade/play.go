package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/intro-arcade/internal/core"
	"github.com/vovakirdan/intro-arcade/internal/platform/tui"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFixedStep  bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (dodge when omitted).

Controls:
  Arrows/WASD  - Move
  Enter        - Start / play again
  Esc          - Quit
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - 5 lives, slower enemies
  normal - 3 lives
  hard   - 2 lives, faster enemies

Examples:
  arcade play
  arcade play dodge --difficulty easy
  arcade play --config ./my-dodge.yaml
  arcade play --seed 42 --fixed-step --log-file arcade.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagFixedStep, "fixed-step", false, "Advance exactly 1/fps per tick instead of measured time")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	logger, closeLog, err := gameLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Unreadable save files count as 0; note why in the log.
	scores := storage.NewHighScoreFile(flagSavePath)
	if _, readErr := scores.Read(); readErr != nil {
		logger.Debug("high score file unreadable, starting from 0", "path", scores.Path(), "error", readErr)
	}

	game, err := registry.Create(gameID, registry.Env{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		HighScores: scores,
	})
	if err != nil {
		logger.Error("cannot create game", "game", gameID, "error", err)
		return fmt.Errorf("creating game: %w", err)
	}

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "save", scores.Path(), "fps", flagFPS, "fixed_step", flagFixedStep)

	if err := tui.Run(game, tui.Options{
		Runtime:   cfg,
		FixedStep: flagFixedStep,
		Store:     store,
		Logger:    logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
