package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// Phase is the snake session state.
type Phase int

const (
	PhaseIdle     Phase = iota // waiting for the first direction
	PhaseRunning               // moving on every interval
	PhaseGameOver              // waiting for any key
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vector returns the unit step for the direction.
func (d Direction) Vector() core.Point {
	switch d {
	case DirUp:
		return core.Pt(0, -1)
	case DirDown:
		return core.Pt(0, 1)
	case DirLeft:
		return core.Pt(-1, 0)
	default:
		return core.Pt(1, 0)
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// TickResult reports what a single movement step did.
type TickResult struct {
	Moved        bool
	Ate          bool
	Died         bool
	SpeedChanged bool
}

// Engine is the snake simulation. It owns no clock: the caller invokes Tick
// once per Interval while the phase is PhaseRunning.
type Engine struct {
	cfg config.SnakeConfig
	rng *rand.Rand

	phase    Phase
	body     []core.Point // head at index 0
	vel      core.Point
	heading  core.Point // step applied by the last move
	food     core.Point
	score    int
	interval time.Duration
	ticks    uint64
}

// NewEngine creates an idle engine with the initial layout.
func NewEngine(cfg config.SnakeConfig, rng *rand.Rand) *Engine {
	e := &Engine{cfg: cfg, rng: rng}
	e.Restart()
	return e
}

// Restart returns to Idle with a one-cell snake and the configured food cell.
func (e *Engine) Restart() {
	e.phase = PhaseIdle
	e.body = []core.Point{core.Pt(e.cfg.Start.HeadX, e.cfg.Start.HeadY)}
	e.vel = core.Point{}
	e.heading = core.Point{}
	e.food = core.Pt(e.cfg.Start.FoodX, e.cfg.Start.FoodY)
	e.score = 0
	e.interval = e.cfg.Speed.Interval
	e.ticks = 0
}

// HandleDirection steers the snake. A direction straight back into the
// neck is rejected. The first accepted direction starts the game.
func (e *Engine) HandleDirection(d Direction) bool {
	if e.phase == PhaseGameOver {
		return false
	}
	v := d.Vector()
	if v == e.vel {
		return false
	}
	if e.heading.Add(v) == (core.Point{}) {
		return false
	}
	e.vel = v
	if e.phase == PhaseIdle {
		e.phase = PhaseRunning
	}
	return true
}

// Tick moves the snake one cell.
func (e *Engine) Tick() TickResult {
	if e.phase != PhaseRunning {
		return TickResult{}
	}
	e.ticks++

	head := e.body[0].Add(e.vel)
	if !head.In(e.cfg.Grid.Width, e.cfg.Grid.Height) || e.occupied(head) {
		e.phase = PhaseGameOver
		return TickResult{Died: true}
	}

	e.heading = e.vel
	e.body = append(e.body, core.Point{})
	copy(e.body[1:], e.body)
	e.body[0] = head

	res := TickResult{Moved: true}
	if head == e.food {
		res.Ate = true
		before := e.score
		e.score += e.cfg.Scoring.Food
		e.relocateFood()
		res.SpeedChanged = e.speedUp(before)
	} else {
		e.body = e.body[:len(e.body)-1]
	}
	return res
}

// speedUp shortens the interval once for every threshold multiple the score
// crossed since before.
func (e *Engine) speedUp(before int) bool {
	every := e.cfg.Speed.SpeedUpEvery
	if every <= 0 {
		return false
	}
	crossed := e.score/every - before/every
	if crossed <= 0 {
		return false
	}
	old := e.interval
	for range crossed {
		e.interval = max(e.interval-e.cfg.Speed.Step, e.cfg.Speed.Floor)
	}
	return e.interval != old
}

// relocateFood picks random cells until one is free of the snake. After
// enough misses it falls back to the first free cell in scan order; a full
// board parks the food off-grid at (-1, -1).
func (e *Engine) relocateFood() {
	w, h := e.cfg.Grid.Width, e.cfg.Grid.Height
	for range w * h * 4 {
		p := core.Pt(e.rng.Intn(w), e.rng.Intn(h))
		if !e.occupied(p) {
			e.food = p
			return
		}
	}
	for y := range h {
		for x := range w {
			if p := core.Pt(x, y); !e.occupied(p) {
				e.food = p
				return
			}
		}
	}
	e.food = core.Pt(-1, -1)
}

func (e *Engine) occupied(p core.Point) bool {
	for _, seg := range e.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Phase returns the current session state.
func (e *Engine) Phase() Phase { return e.phase }

// Body returns a copy of the snake cells, head first.
func (e *Engine) Body() []core.Point {
	out := make([]core.Point, len(e.body))
	copy(out, e.body)
	return out
}

// Head returns the head cell.
func (e *Engine) Head() core.Point { return e.body[0] }

// Len returns the number of snake cells.
func (e *Engine) Len() int { return len(e.body) }

// Food returns the food cell, (-1, -1) when the board is full.
func (e *Engine) Food() core.Point { return e.food }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Interval returns the current movement period.
func (e *Engine) Interval() time.Duration { return e.interval }

// Velocity returns the current unit step, zero while idle.
func (e *Engine) Velocity() core.Point { return e.vel }

// Grid returns the playfield size.
func (e *Engine) Grid() (w, h int) { return e.cfg.Grid.Width, e.cfg.Grid.Height }
