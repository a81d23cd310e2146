package blocks

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

const hudHeight = 2

// Info is the descriptive record for Block-Stack.
var Info = registry.Info{
	Title:       "Crescent Blocks",
	Description: "Stack falling pieces beneath the lanterns and clear full rows before the tower reaches the sky.",
	Instructions: []string{
		"Press an arrow key to start",
		"Left and right arrows move the piece",
		"Up arrow rotates it clockwise",
		"Down arrow drops it faster",
		"Fill a whole row to clear it for 100 points",
	},
	Features: []string{
		"Seven classic piece shapes",
		"Rotation with collision checks",
		"Row clearing with per-line scoring",
	},
}

var configPath string

// SetConfigPath sets a custom YAML config for new sessions.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts the block Engine to the host contract and owns the gravity interval.
type Game struct {
	eng  *Engine
	drop *core.Interval
	dt   time.Duration

	paused   bool
	disposed bool
}

// New creates an unmounted Block-Stack game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "blocks" }

// Title returns the display name.
func (g *Game) Title() string { return Info.Title }

// Info returns the descriptive record.
func (g *Game) Info() registry.Info { return Info }

// Mount builds a fresh idle session.
func (g *Game) Mount(cfg core.RuntimeConfig) {
	bcfg, err := config.LoadBlocks(configPath)
	if err != nil {
		bcfg = config.DefaultBlocksConfig()
	}
	g.eng = NewEngine(bcfg, rand.New(rand.NewSource(cfg.Seed)))
	g.drop = core.NewInterval(bcfg.Speed.DropInterval)
	g.dt = cfg.TickDuration()
	g.paused = false
	g.disposed = false
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
			g.drop.Stop()
		}
		return core.StepResult{State: g.State()}
	case PhaseIdle:
		if !hasArrow(in) {
			return core.StepResult{State: g.State()}
		}
		g.eng.Start()
		g.drop.Start()
	case PhaseFalling:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Ordered() {
		switch a {
		case core.ActionLeft:
			g.eng.AttemptMove(-1, 0)
		case core.ActionRight:
			g.eng.AttemptMove(1, 0)
		case core.ActionDown:
			g.eng.AttemptMove(0, 1)
		case core.ActionUp:
			g.eng.AttemptRotate()
		}
	}

	for range g.drop.Advance(g.dt) {
		if res := g.eng.Tick(); res.GameOver {
			g.drop.Stop()
			break
		}
	}

	return core.StepResult{State: g.State()}
}

func hasArrow(in core.InputFrame) bool {
	return in.Has(core.ActionUp) || in.Has(core.ActionDown) ||
		in.Has(core.ActionLeft) || in.Has(core.ActionRight)
}

// Render draws the well, the falling piece and the side panel.
func (g *Game) Render(dst *core.Screen) {
	if g.disposed || g.eng == nil {
		return
	}
	dst.Clear()

	cols, rows := g.eng.Size()
	const panelW = 20
	well := core.NewRect((dst.Width()-cols-2-panelW)/2, hudHeight, cols+2, (rows+1)/2+2)

	dst.DrawTextColored(0, 0, fmt.Sprintf(" Blocks  Score: %d  Lines: %d", g.eng.Score(), g.eng.Lines()), core.ColorGold)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if well.X < 0 || dst.Height() < well.Bottom() {
		dst.DrawOverlay(core.ColorGold, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBoxColored(well, core.ColorRoyal)
	piece := g.eng.Piece()
	falling := make(map[core.Point]bool, 4)
	if g.eng.Phase() == PhaseFalling {
		for _, c := range piece.Mask.Cells() {
			falling[piece.Pos.Add(c)] = true
		}
	}
	dst.DrawHalfBlocks(well.X+1, well.Y+1, cols, rows, func(x, y int) core.Color {
		if falling[core.Pt(x, y)] {
			return piece.Color
		}
		if c := g.eng.Cell(x, y); c != core.ColorDefault {
			return c
		}
		return core.ColorNavy
	})

	px := well.Right() + 2
	dst.DrawTextColored(px, well.Y+1, fmt.Sprintf("Score  %d", g.eng.Score()), core.ColorPaleGold)
	dst.DrawTextColored(px, well.Y+2, fmt.Sprintf("Lines  %d", g.eng.Lines()), core.ColorPaleGold)
	dst.DrawText(px, well.Y+4, "←/→  move")
	dst.DrawText(px, well.Y+5, "↑    rotate")
	dst.DrawText(px, well.Y+6, "↓    soft drop")
	dst.DrawText(px, well.Y+7, "P    pause")

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

// Dispose stops the gravity interval and drops the session.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	if g.drop != nil {
		g.drop.Stop()
	}
	g.eng = nil
}
