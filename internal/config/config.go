// Package config provides YAML-based game tuning and viper-backed
// application settings for the arcade.
package config

import "time"

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid    SnakeGrid    `yaml:"grid"`
	Start   SnakeStart   `yaml:"start"`
	Speed   SnakeSpeed   `yaml:"speed"`
	Scoring SnakeScoring `yaml:"scoring"`
}

// SnakeGrid defines the playfield size in cells.
type SnakeGrid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeStart defines the initial layout.
type SnakeStart struct {
	HeadX int `yaml:"head_x"`
	HeadY int `yaml:"head_y"`
	FoodX int `yaml:"food_x"`
	FoodY int `yaml:"food_y"`
}

// SnakeSpeed defines the movement cadence and its speed-ups.
type SnakeSpeed struct {
	Interval     time.Duration `yaml:"interval"`
	SpeedUpEvery int           `yaml:"speed_up_every"` // score threshold, 0 disables
	Step         time.Duration `yaml:"step"`
	Floor        time.Duration `yaml:"floor"`
}

// SnakeScoring defines points awarded.
type SnakeScoring struct {
	Food int `yaml:"food"`
}

// BlocksConfig contains all configuration for the Block-Stack game.
type BlocksConfig struct {
	Board   BlocksBoard   `yaml:"board"`
	Speed   BlocksSpeed   `yaml:"speed"`
	Scoring BlocksScoring `yaml:"scoring"`
}

// BlocksBoard defines the well size in cells.
type BlocksBoard struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// BlocksSpeed defines the gravity cadence.
type BlocksSpeed struct {
	DropInterval time.Duration `yaml:"drop_interval"`
}

// BlocksScoring defines points awarded.
type BlocksScoring struct {
	Line int `yaml:"line"` // points per cleared row
}

// MatchConfig contains all configuration for the Memory Match game.
type MatchConfig struct {
	Symbols      []string      `yaml:"symbols"`
	Columns      int           `yaml:"columns"`
	ResolveDelay time.Duration `yaml:"resolve_delay"`
	PairPoints   int           `yaml:"pair_points"`
}

// PuzzleConfig contains all configuration for the Sliding Puzzle game.
type PuzzleConfig struct {
	Size         int `yaml:"size"`
	ShuffleMoves int `yaml:"shuffle_moves"`
}

// Validate clamps nonsense values back to playable ones.
func (c *SnakeConfig) Validate() {
	d := DefaultSnakeConfig()
	if c.Grid.Width < 4 || c.Grid.Height < 4 {
		c.Grid = d.Grid
	}
	if !inGrid(c.Start.HeadX, c.Start.HeadY, c.Grid.Width, c.Grid.Height) {
		c.Start.HeadX, c.Start.HeadY = c.Grid.Width/3, c.Grid.Height/3
	}
	if !inGrid(c.Start.FoodX, c.Start.FoodY, c.Grid.Width, c.Grid.Height) ||
		(c.Start.FoodX == c.Start.HeadX && c.Start.FoodY == c.Start.HeadY) {
		c.Start.FoodX, c.Start.FoodY = c.Grid.Width/2, c.Grid.Height/2
	}
	if c.Speed.Interval <= 0 {
		c.Speed.Interval = d.Speed.Interval
	}
	if c.Speed.Floor <= 0 || c.Speed.Floor > c.Speed.Interval {
		c.Speed.Floor = min(d.Speed.Floor, c.Speed.Interval)
	}
	if c.Speed.Step < 0 {
		c.Speed.Step = 0
	}
	if c.Speed.SpeedUpEvery < 0 {
		c.Speed.SpeedUpEvery = 0
	}
	if c.Scoring.Food <= 0 {
		c.Scoring.Food = d.Scoring.Food
	}
}

// Validate clamps nonsense values back to playable ones.
func (c *BlocksConfig) Validate() {
	d := DefaultBlocksConfig()
	if c.Board.Cols < 4 || c.Board.Rows < 4 {
		c.Board = d.Board
	}
	if c.Speed.DropInterval <= 0 {
		c.Speed.DropInterval = d.Speed.DropInterval
	}
	if c.Scoring.Line <= 0 {
		c.Scoring.Line = d.Scoring.Line
	}
}

// Validate clamps nonsense values back to playable ones.
// Duplicate symbols are dropped so every symbol forms exactly one pair.
func (c *MatchConfig) Validate() {
	d := DefaultMatchConfig()
	seen := make(map[string]bool, len(c.Symbols))
	uniq := c.Symbols[:0]
	for _, s := range c.Symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		uniq = append(uniq, s)
	}
	c.Symbols = uniq
	if len(c.Symbols) == 0 {
		c.Symbols = d.Symbols
	}
	if c.Columns <= 0 {
		c.Columns = d.Columns
	}
	if c.ResolveDelay <= 0 {
		c.ResolveDelay = d.ResolveDelay
	}
	if c.PairPoints <= 0 {
		c.PairPoints = d.PairPoints
	}
}

// Validate clamps nonsense values back to playable ones.
func (c *PuzzleConfig) Validate() {
	d := DefaultPuzzleConfig()
	if c.Size < 2 || c.Size > 8 {
		c.Size = d.Size
	}
	if c.ShuffleMoves < 1 {
		c.ShuffleMoves = d.ShuffleMoves
	}
}

func inGrid(x, y, w, h int) bool {
	return x >= 0 && x < w && y >= 0 && y < h
}
