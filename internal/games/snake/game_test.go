package snake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// mountTestGame mounts with a 10 Hz host clock so one host tick equals one
// default movement interval.
func mountTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Mount(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 42})
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestGameStartsOnFirstArrow(t *testing.T) {
	g := mountTestGame(t)

	g.Step(core.NewInputFrame())
	require.Equal(t, PhaseIdle, g.Engine().Phase())

	g.Step(press(core.ActionUp))
	assert.Equal(t, core.Pt(10, 9), g.Engine().Head())

	g.Step(core.NewInputFrame())
	assert.Equal(t, core.Pt(10, 8), g.Engine().Head())
}

func TestGamePause(t *testing.T) {
	g := mountTestGame(t)
	g.Step(press(core.ActionUp))

	res := g.Step(press(core.ActionPause))
	assert.True(t, res.State.Paused)
	head := g.Engine().Head()
	g.Step(core.NewInputFrame())
	assert.Equal(t, head, g.Engine().Head(), "paused game should not move")

	g.Step(press(core.ActionPause))
	assert.NotEqual(t, head, g.Engine().Head())
}

func TestGameOverAnyKeyRestarts(t *testing.T) {
	g := mountTestGame(t)
	g.Step(press(core.ActionUp))
	for i := 0; i < 20 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	require.True(t, g.State().GameOver, "snake should hit the top wall")

	g.Step(press(core.ActionAnyKey))
	assert.Equal(t, PhaseIdle, g.Engine().Phase())
	assert.Equal(t, 0, g.State().Score)
}

func TestGameRender(t *testing.T) {
	g := mountTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.String(), "Press an arrow key to start")

	small := core.NewScreen(20, 10)
	g.Render(small)
	assert.Contains(t, small.String(), "too small")
}

func TestGameDisposeIdempotent(t *testing.T) {
	g := mountTestGame(t)
	g.Step(press(core.ActionRight))

	g.Dispose()
	g.Dispose()

	res := g.Step(press(core.ActionDown))
	assert.Equal(t, core.GameState{}, res.State)

	screen := core.NewScreen(80, 24)
	screen.Fill('x')
	g.Render(screen)
	assert.Equal(t, 'x', screen.Get(0, 0), "disposed game must not draw")
}

func TestGameInfo(t *testing.T) {
	g := New()
	assert.Equal(t, "snake", g.ID())
	assert.NotEmpty(t, g.Info().Instructions)
	assert.Equal(t, g.Title(), g.Info().Title)
}
