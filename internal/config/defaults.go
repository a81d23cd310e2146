package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

//go:embed defaults/match.yaml
var defaultMatchYAML []byte

//go:embed defaults/puzzle.yaml
var defaultPuzzleYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:  SnakeGrid{Width: 30, Height: 30},
		Start: SnakeStart{HeadX: 10, HeadY: 10, FoodX: 15, FoodY: 15},
		Speed: SnakeSpeed{
			Interval:     100 * time.Millisecond,
			SpeedUpEvery: 50,
			Step:         10 * time.Millisecond,
			Floor:        50 * time.Millisecond,
		},
		Scoring: SnakeScoring{Food: 10},
	}
}

// DefaultBlocksConfig returns the default Block-Stack configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board:   BlocksBoard{Cols: 16, Rows: 24},
		Speed:   BlocksSpeed{DropInterval: 500 * time.Millisecond},
		Scoring: BlocksScoring{Line: 100},
	}
}

// DefaultMatchConfig returns the default Memory Match configuration.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Symbols:      []string{"Crescent", "Star", "Lantern", "Dome"},
		Columns:      4,
		ResolveDelay: time.Second,
		PairPoints:   10,
	}
}

// DefaultPuzzleConfig returns the default Sliding Puzzle configuration.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		Size:         3,
		ShuffleMoves: 100,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake":
		return defaultSnakeYAML
	case "blocks":
		return defaultBlocksYAML
	case "match":
		return defaultMatchYAML
	case "puzzle":
		return defaultPuzzleYAML
	default:
		return nil
	}
}
