package match

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

const (
	hudHeight = 2
	cardW     = 12
	cardH     = 5
	cardGap   = 2
)

// Info is the descriptive record for Memory Match.
var Info = registry.Info{
	Title:       "Crescent Memory",
	Description: "Turn over the cards two at a time and find every pair of crescents, stars, lanterns and domes.",
	Instructions: []string{
		"Click a card, or move the cursor with the arrows and press Enter",
		"Reveal two cards per move",
		"Matching cards stay face up and score 10 points",
		"Find all pairs to win",
		"Press R to deal a new deck",
	},
	Features: []string{
		"Eight cards in four pairs",
		"Move counter",
		"Mouse and keyboard play",
	},
}

var glyphs = map[string]string{
	"Crescent": "☾",
	"Star":     "★",
	"Lantern":  "♦",
	"Dome":     "⌂",
}

var configPath string

// SetConfigPath sets a custom YAML config for new sessions.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts the match Engine to the host contract. It owns the single
// pending resolution delay.
type Game struct {
	eng     *Engine
	resolve core.Delay
	delay   time.Duration
	dt      time.Duration

	cursor   int
	viewW    int
	viewH    int
	disposed bool
}

// New creates an unmounted Memory Match game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("match", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "match" }

// Title returns the display name.
func (g *Game) Title() string { return Info.Title }

// Info returns the descriptive record.
func (g *Game) Info() registry.Info { return Info }

// Mount deals a new deck; the game is immediately playable.
func (g *Game) Mount(cfg core.RuntimeConfig) {
	mcfg, err := config.LoadMatch(configPath)
	if err != nil {
		mcfg = config.DefaultMatchConfig()
	}
	g.eng = NewEngine(mcfg, rand.New(rand.NewSource(cfg.Seed)))
	g.resolve.Cancel()
	g.delay = mcfg.ResolveDelay
	g.dt = cfg.TickDuration()
	g.cursor = 0
	g.viewW = cfg.ScreenW
	g.viewH = cfg.ScreenH
	g.disposed = false
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *Engine { return g.eng }

// Step advances the session by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.disposed || g.eng == nil {
		return core.StepResult{}
	}

	g.resolve.Advance(g.dt)

	if in.Has(core.ActionRestart) {
		g.resolve.Cancel()
		g.eng.Deal()
		g.cursor = 0
		return core.StepResult{State: g.State()}
	}

	n := len(g.eng.cards)
	cols := max(g.eng.Columns(), 1)
	for _, a := range in.Ordered() {
		switch a {
		case core.ActionLeft:
			if g.cursor%cols > 0 {
				g.cursor--
			}
		case core.ActionRight:
			if g.cursor%cols < cols-1 && g.cursor+1 < n {
				g.cursor++
			}
		case core.ActionUp:
			if g.cursor-cols >= 0 {
				g.cursor -= cols
			}
		case core.ActionDown:
			if g.cursor+cols < n {
				g.cursor += cols
			}
		case core.ActionConfirm:
			g.flip(g.cursor)
		}
	}

	if in.Pointer != nil {
		if id, ok := g.cardAt(*in.Pointer); ok {
			g.cursor = id
			g.flip(id)
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) flip(id int) {
	if res := g.eng.Flip(id); res.Resolve {
		g.resolve.Schedule(g.delay, func() { g.eng.Resolve() })
	}
}

// cardRect returns the screen rectangle of card id for the last known view size.
func (g *Game) cardRect(id int) core.Rect {
	cols := max(g.eng.Columns(), 1)
	rows := (len(g.eng.cards) + cols - 1) / cols
	gridW := cols*cardW + (cols-1)*cardGap
	gridH := rows*cardH + (rows-1)*(cardGap/2)
	x0 := (g.viewW - gridW) / 2
	y0 := hudHeight + max((g.viewH-hudHeight-1-gridH)/2, 0)
	col, row := id%cols, id/cols
	return core.NewRect(x0+col*(cardW+cardGap), y0+row*(cardH+cardGap/2), cardW, cardH)
}

func (g *Game) cardAt(p core.Point) (int, bool) {
	for id := range g.eng.cards {
		if g.cardRect(id).Contains(p.X, p.Y) {
			return id, true
		}
	}
	return 0, false
}

// Render draws the card grid.
func (g *Game) Render(dst *core.Screen) {
	if g.disposed || g.eng == nil {
		return
	}
	dst.Clear()
	g.viewW, g.viewH = dst.Width(), dst.Height()

	hud := fmt.Sprintf(" Memory  Pairs: %d/%d  Moves: %d  Score: %d",
		g.eng.Pairs(), g.eng.TotalPairs(), g.eng.Moves(), g.eng.Score())
	dst.DrawTextColored(0, 0, hud, core.ColorGold)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	for _, c := range g.eng.cards {
		r := g.cardRect(c.ID)
		border := core.ColorRoyal
		if c.ID == g.cursor {
			border = core.ColorGold
		}
		switch {
		case c.Matched:
			dst.FillRect(r, core.ColorEmerald)
			g.drawFace(dst, r, c.Symbol, core.ColorBrightWhite)
		case c.Revealed:
			dst.FillRect(r, core.ColorPaleGold)
			g.drawFace(dst, r, c.Symbol, core.ColorNavy)
		default:
			dst.FillRect(r, core.ColorNavy)
			dst.DrawTextColored(r.X+(r.W-1)/2, r.Y+r.H/2, "☾", core.ColorPaleGold)
		}
		dst.DrawBoxColored(r, border)
	}

	if g.eng.Won() {
		dst.DrawOverlay(core.ColorGold, "All pairs found!",
			fmt.Sprintf("Moves: %d  Score: %d", g.eng.Moves(), g.eng.Score()), "Press R to play again")
	}
}

func (g *Game) drawFace(dst *core.Screen, r core.Rect, symbol string, fg core.Color) {
	glyph, ok := glyphs[symbol]
	if !ok {
		glyph = string([]rune(symbol)[:1])
	}
	label := []rune(symbol)
	if len(label) > r.W-2 {
		label = label[:r.W-2]
	}
	for _, line := range []struct {
		y    int
		text string
	}{{r.Y + 1, glyph}, {r.Y + 3, string(label)}} {
		runes := []rune(line.text)
		x := r.X + (r.W-len(runes))/2
		for i, ch := range runes {
			cell := dst.GetCell(x+i, line.y)
			dst.SetCell(x+i, line.y, core.Cell{Rune: ch, Fg: fg, Bg: cell.Bg})
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	won := g.eng.Won()
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: won,
		Won:      won,
	}
}

// Dispose drops the pending resolution and the session.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.resolve.Cancel()
	g.eng = nil
}
