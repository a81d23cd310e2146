package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

const (
	hudHeight = 2
	tileW     = 7
	tileH     = 3
)

// Sizes lists the board sizes offered by the size selector.
var Sizes = []int{3, 4, 5}

// Info is the descriptive record for Sliding Puzzle.
var Info = registry.Info{
	Title:       "Crescent Puzzle",
	Description: "Slide the numbered tiles back into order to restore the mosaic. Every shuffle is made of legal moves, so every board can be solved.",
	Instructions: []string{
		"Click a tile next to the empty space to slide it",
		"Or move the cursor with the arrows and press Enter",
		"Put the tiles in order from 1 with the gap at the bottom right",
		"Press R to shuffle a new board",
	},
	Features: []string{
		"3×3, 4×4 and 5×5 boards",
		"Always solvable shuffles",
		"Move counter",
	},
}

var (
	configPath   string
	selectedSize int
)

// SetConfigPath sets a custom YAML config for new sessions.
func SetConfigPath(path string) {
	configPath = path
}

// SetSize overrides the configured board size for new sessions. 0 restores the config value.
func SetSize(n int) {
	selectedSize = n
}

// GetSize returns the current size override.
func GetSize() int {
	return selectedSize
}

// Game adapts the puzzle Engine to the host contract.
type Game struct {
	eng     *Engine
	size    int
	shuffle int

	won      bool
	cursor   core.Point
	viewW    int
	viewH    int
	disposed bool
}

// New creates an unmounted Sliding Puzzle game.
func New() *Game {
	return &Game{}
}

// NewSized creates an unmounted game with its own board size, for hosts
// that run several sessions side by side.
func NewSized(n int) *Game {
	return &Game{size: n}
}

func init() {
	registry.Register("puzzle", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "puzzle" }

// Title returns the display name.
func (g *Game) Title() string { return Info.Title }

// Info returns the descriptive record.
func (g *Game) Info() registry.Info { return Info }

// Mount shuffles a new board; the game is immediately playable.
func (g *Game) Mount(cfg core.RuntimeConfig) {
	pcfg, err := config.LoadPuzzle(configPath)
	if err != nil {
		pcfg = config.DefaultPuzzleConfig()
	}
	size := g.size
	if size == 0 {
		size = selectedSize
	}
	if size > 0 {
		pcfg.Size = size
		pcfg.Validate()
	}
	g.eng = NewEngine(pcfg.Size, rand.New(rand.NewSource(cfg.Seed)))
	g.shuffle = pcfg.ShuffleMoves
	g.eng.Shuffle(g.shuffle)
	g.won = false
	g.cursor = core.Point{}
	g.viewW = cfg.ScreenW
	g.viewH = cfg.ScreenH
	g.disposed = false
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *Engine { return g.eng }

// Step applies this tick's input. The puzzle has no clock of its own.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.disposed || g.eng == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) {
		g.eng.Shuffle(g.shuffle)
		g.won = false
		return core.StepResult{State: g.State()}
	}

	n := g.eng.Size()
	for _, a := range in.Ordered() {
		switch a {
		case core.ActionLeft:
			g.cursor.X = core.Max(g.cursor.X-1, 0)
		case core.ActionRight:
			g.cursor.X = core.Min(g.cursor.X+1, n-1)
		case core.ActionUp:
			g.cursor.Y = core.Max(g.cursor.Y-1, 0)
		case core.ActionDown:
			g.cursor.Y = core.Min(g.cursor.Y+1, n-1)
		case core.ActionConfirm:
			g.move(g.cursor)
		}
	}

	if in.Pointer != nil {
		if p, ok := g.tileAt(*in.Pointer); ok {
			g.cursor = p
			g.move(p)
		}
	}

	return core.StepResult{State: g.State()}
}

// move is blocked once the board is won until the next shuffle.
func (g *Game) move(p core.Point) {
	if g.won {
		return
	}
	if g.eng.AttemptMove(p.X, p.Y) && g.eng.IsSolved() {
		g.won = true
	}
}

func (g *Game) origin() core.Point {
	n := g.eng.Size()
	return core.Pt((g.viewW-n*tileW)/2, hudHeight+max((g.viewH-hudHeight-n*tileH)/2, 0))
}

func (g *Game) tileRect(p core.Point) core.Rect {
	o := g.origin()
	return core.NewRect(o.X+p.X*tileW, o.Y+p.Y*tileH, tileW, tileH)
}

func (g *Game) tileAt(sp core.Point) (core.Point, bool) {
	n := g.eng.Size()
	o := g.origin()
	if sp.X < o.X || sp.Y < o.Y {
		return core.Point{}, false
	}
	p := core.Pt((sp.X-o.X)/tileW, (sp.Y-o.Y)/tileH)
	return p, p.In(n, n)
}

// Render draws the tile grid.
func (g *Game) Render(dst *core.Screen) {
	if g.disposed || g.eng == nil {
		return
	}
	dst.Clear()
	g.viewW, g.viewH = dst.Width(), dst.Height()

	n := g.eng.Size()
	hud := fmt.Sprintf(" Puzzle %d×%d  Moves: %d", n, n, g.eng.Moves())
	dst.DrawTextColored(0, 0, hud, core.ColorGold)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for y := range n {
		for x := range n {
			r := g.tileRect(core.Pt(x, y))
			id := g.eng.TileAt(x, y)
			if id == Empty {
				dst.FillRect(r, core.ColorNavy)
			} else {
				bg := core.ColorPaleGold
				if g.eng.Home(id) == core.Pt(x, y) {
					bg = core.ColorGold
				}
				dst.FillRect(r, bg)
				label := strconv.Itoa(id + 1)
				lx := r.X + (r.W-len(label))/2
				for i, ch := range label {
					dst.SetCell(lx+i, r.Y+1, core.Cell{Rune: ch, Fg: core.ColorNavy, Bg: bg})
				}
			}
			if g.cursor == core.Pt(x, y) {
				dst.DrawBoxColored(r, core.ColorRoyal)
			}
		}
	}

	if g.won {
		dst.DrawOverlay(core.ColorGold, "Solved!", fmt.Sprintf("Moves: %d", g.eng.Moves()), "Press R to shuffle")
	}
}

// State returns the current game state. The score is the move count.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Moves(),
		GameOver: g.won,
		Won:      g.won,
	}
}

// Dispose drops the session.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.eng = nil
}
