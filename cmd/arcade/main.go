// arcade runs Intro Arcade, a dodge-the-enemies game, in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (default: dodge)
//	arcade scores [game]     - Show run history and high scores
//	arcade serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set run history database (default: ~/.arcade/scores.db)
//	--save <path>         - Set high score file (default: save.json next to the binary)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/intro-arcade/internal/games/dodge"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

// defaultGame is played when no game is named.
const defaultGame = "dodge"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSavePath string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Intro Arcade - dodge enemies and collect coins in your terminal",
	Long: `Intro Arcade is a small real-time arcade game for the terminal.
Steer your square with the arrow keys or WASD, avoid the red bouncers and
purple seekers, and collect gold coins. Every coin is a point; more enemies
join as your score grows.

Available commands:
  list     - Show all available games
  play     - Play a game
  scores   - View run history and high scores
  serve    - Start SSH server for remote play

Examples:
  arcade play
  arcade play --difficulty hard
  arcade scores --plain
  arcade serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", storage.DefaultHighScorePath(), "Path to high score file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// gameLogger returns the logger used while a game owns the terminal:
// the --log-file when set, otherwise a logger that discards everything.
// The returned close function must be called when the game ends.
func gameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard, "arcade")
		return logger, func() {}, err
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "arcade")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
