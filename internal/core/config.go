package core

import "time"

// RuntimeConfig contains configuration passed to games when they are mounted.
// Games use this to adapt to the container size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the simulated time covered by one host tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the host.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the session reached a terminal state (lost or won)
	Won      bool // Whether the terminal state is a win
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each host tick.
type StepResult struct {
	State GameState
}
