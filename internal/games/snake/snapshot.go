package snake

import "time"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Phase    Phase
	Ticks    uint64
	Score    int
	Len      int
	HeadX    int
	HeadY    int
	FoodX    int
	FoodY    int
	Interval time.Duration
}

// Snapshot returns the current engine snapshot for determinism verification.
func (e *Engine) Snapshot() Snapshot {
	head := e.Head()
	return Snapshot{
		Phase:    e.phase,
		Ticks:    e.ticks,
		Score:    e.score,
		Len:      len(e.body),
		HeadX:    head.X,
		HeadY:    head.Y,
		FoodX:    e.food.X,
		FoodY:    e.food.Y,
		Interval: e.interval,
	}
}
