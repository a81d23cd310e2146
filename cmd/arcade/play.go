package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/games/blocks"
	"github.com/vovakirdan/crescent-arcade/internal/games/match"
	"github.com/vovakirdan/crescent-arcade/internal/games/puzzle"
	"github.com/vovakirdan/crescent-arcade/internal/games/snake"
	"github.com/vovakirdan/crescent-arcade/internal/platform/tui"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

var (
	flagConfig string
	flagSize   int
)

// configSetters points each game at a custom tuning file.
var configSetters = map[string]func(string){
	"snake":  snake.SetConfigPath,
	"blocks": blocks.SetConfigPath,
	"match":  match.SetConfigPath,
	"puzzle": puzzle.SetConfigPath,
}

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD/hjkl - Steer, move the cursor, rotate (Up in Block-Stack)
  Enter/Space      - Flip a card or slide a tile
  Mouse click      - Flip a card or slide a tile
  P                - Pause
  R                - Restart or reshuffle
  Esc/Q/Ctrl+C     - Quit
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots

Examples:
  arcade play snake
  arcade play blocks --fps 30
  arcade play puzzle --size 4
  arcade play match --game-config ./my-match.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "game-config", "", "Path to custom game tuning YAML")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Sliding Puzzle board size (3, 4 or 5)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if set, ok := configSetters[gameID]; ok && flagConfig != "" {
		set(flagConfig)
	}

	var game registry.Game
	if gameID == "puzzle" && flagSize > 0 {
		game = puzzle.NewSized(flagSize)
	} else {
		g, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		game = g
	}

	if err := tui.Run(game, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = app.TickRate
	cfg.Seed = app.Seed
	return cfg
}
