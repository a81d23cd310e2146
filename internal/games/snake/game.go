package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

const hudHeight = 2

// Info is the descriptive record for Snake.
var Info = registry.Info{
	Title:       "Crescent Snake",
	Description: "Guide the snake through the night sky, eating golden dates under the crescent moon. Every date makes the snake longer and the score higher.",
	Instructions: []string{
		"Use the arrow keys (or WASD / hjkl) to steer",
		"The first direction starts the game",
		"Eat dates to grow and score 10 points each",
		"Avoid the walls and your own tail",
		"Press any key after a crash to play again",
	},
	Features: []string{
		"Classic grid movement with growth",
		"Speed rises every 50 points",
		"Crescent night theme",
	},
}

var configPath string

// SetConfigPath sets a custom YAML config for new sessions.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts the snake Engine to the host contract. It owns the movement
// interval and converts host ticks into engine ticks.
type Game struct {
	eng  *Engine
	move *core.Interval
	dt   time.Duration

	paused   bool
	disposed bool
	screenW  int
	screenH  int
}

// New creates an unmounted Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return Info.Title }

// Info returns the descriptive record.
func (g *Game) Info() registry.Info { return Info }

// Mount builds a fresh idle session.
func (g *Game) Mount(cfg core.RuntimeConfig) {
	scfg, err := config.LoadSnake(configPath)
	if err != nil {
		scfg = config.DefaultSnakeConfig()
	}
	g.eng = NewEngine(scfg, rand.New(rand.NewSource(cfg.Seed)))
	g.move = core.NewInterval(scfg.Speed.Interval)
	g.dt = cfg.TickDuration()
	g.paused = false
	g.disposed = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *Engine { return g.eng }

// Step advances the session by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.disposed || g.eng == nil {
		return core.StepResult{}
	}

	switch g.eng.Phase() {
	case PhaseGameOver:
		if in.Any() {
			g.eng.Restart()
			g.move.Stop()
			g.move.SetPeriod(g.eng.Interval())
		}
		return core.StepResult{State: g.State()}
	case PhaseRunning:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Ordered() {
		d, ok := directionFor(a)
		if !ok {
			continue
		}
		if g.eng.HandleDirection(d) && !g.move.Running() {
			g.move.Start()
		}
	}

	for range g.move.Advance(g.dt) {
		res := g.eng.Tick()
		if res.SpeedChanged {
			g.move.SetPeriod(g.eng.Interval())
		}
		if res.Died {
			g.move.Stop()
			break
		}
	}

	return core.StepResult{State: g.State()}
}

func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.disposed || g.eng == nil {
		return
	}
	dst.Clear()

	w, h := g.eng.Grid()
	board := core.NewRect((dst.Width()-w-2)/2, hudHeight, w+2, (h+1)/2+2)

	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d  Speed: %s", g.eng.Score(), g.eng.Len(), g.eng.Interval())
	dst.DrawTextColored(0, 0, hud, core.ColorGold)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if dst.Width() < board.W || dst.Height() < board.Bottom() {
		dst.DrawOverlay(core.ColorGold, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBoxColored(board, core.ColorRoyal)
	head := g.eng.Head()
	food := g.eng.Food()
	body := make(map[core.Point]bool, g.eng.Len())
	for _, p := range g.eng.Body() {
		body[p] = true
	}
	dst.DrawHalfBlocks(board.X+1, board.Y+1, w, h, func(x, y int) core.Color {
		p := core.Pt(x, y)
		switch {
		case p == head:
			return core.ColorGold
		case body[p]:
			return core.ColorPaleGold
		case p == food:
			return core.ColorCoral
		default:
			return core.ColorNavy
		}
	})

	switch {
	case g.eng.Phase() == PhaseGameOver:
		dst.DrawOverlay(core.ColorCoral, "Game Over", fmt.Sprintf("Score: %d", g.eng.Score()), "Press any key to restart")
	case g.eng.Phase() == PhaseIdle:
		dst.DrawOverlay(core.ColorGold, "Press an arrow key to start")
	case g.paused:
		dst.DrawOverlay(core.ColorGold, "Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.Phase() == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Dispose stops the movement interval and drops the session.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	if g.move != nil {
		g.move.Stop()
	}
	g.eng = nil
}
