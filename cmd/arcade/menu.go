package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crescent-arcade/internal/platform/tui"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Leave a game with Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  I            - Game details
  F            - Send feedback
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./arcade.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(app.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open feedback database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(tuiSaver(store), runtimeConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}

// tuiSaver keeps a nil store from becoming a non-nil interface.
func tuiSaver(store *storage.Store) tui.FeedbackSaver {
	if store == nil {
		return nil
	}
	return store
}
