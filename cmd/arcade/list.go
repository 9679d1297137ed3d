package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/intro-arcade/internal/registry"
	"github.com/vovakirdan/intro-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows the games registered in the arcade with their recorded run counts.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Run counts are optional; the list works without a database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	} else {
		defer store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Runs")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----")

	// Print games
	for _, g := range games {
		runs := "-"
		if store != nil {
			if stats, statsErr := store.Stats(g.ID); statsErr == nil {
				runs = fmt.Sprintf("%d", stats.RunsCount)
			}
		}
		name := g.ID
		if g.ID == defaultGame {
			name += "*"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen+1, name, maxTitleLen, g.Title, runs)
	}

	fmt.Println()
	fmt.Println("* played when no game is named.")
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
