package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/intro-arcade/internal/platform/tui"
	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show run history and high scores for a game",
	Long: `Display the best runs for the specified game (dodge when omitted).

On a terminal the scoreboard is interactive; use --plain, or pipe the
output, for a text table.

Examples:
  arcade scores
  arcade scores --plain --limit 5
  arcade scores dodge --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text table instead of the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	title, _ := registry.Title(gameID)

	// Open run history
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s.\n", title)
		return nil
	}

	saved := storage.NewHighScoreFile(flagSavePath)

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(store, saved, gameID, width, height)
	}

	return printScores(os.Stdout, store, saved, gameID, title)
}

// printScores writes the plain text scoreboard.
func printScores(w io.Writer, store *storage.Store, saved *storage.HighScoreFile, gameID, title string) error {
	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if gameID == defaultGame {
		fmt.Fprintf(w, "Saved high score: %d  (%s)\n\n", saved.Load(), saved.Path())
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-6s  %-9s  %-7s  %s\n", "Rank", "Score", "Alive", "Enemies", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-9s  %-7s  %s\n", "----", "-----", "-----", "-------", "----")

	// Print runs
	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(w, "  %-4s  %-6s  %-9s  %-7s  %s\n", row[0], row[1], row[2], row[3], row[4])
	}

	// Show aggregates
	if stats, err := store.Stats(gameID); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d   Runs: %d   Average: %.1f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	}
	return nil
}
