package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	snake, err := LoadSnake("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSnakeConfig(), snake)

	blocks, err := LoadBlocks("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBlocksConfig(), blocks)

	match, err := LoadMatch("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMatchConfig(), match)

	puzzle, err := LoadPuzzle("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPuzzleConfig(), puzzle)
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed:\n  interval: 80ms\n"), 0o644))

	cfg, err := LoadSnake(path)
	require.NoError(t, err)
	assert.Equal(t, 80*time.Millisecond, cfg.Speed.Interval)
	assert.Equal(t, 30, cfg.Grid.Width, "unset fields keep defaults")
	assert.Equal(t, 50*time.Millisecond, cfg.Speed.Floor)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := LoadPuzzle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("size: [oops"), 0o644))
	_, err = LoadPuzzle(bad)
	assert.Error(t, err)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "puzzle.yaml"), []byte("size: 4\n"), 0o644))

	cfg, err := LoadPuzzle("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Size)
	assert.Equal(t, 100, cfg.ShuffleMoves)
}

func TestValidateClamps(t *testing.T) {
	match := MatchConfig{Symbols: []string{"Star", "Star", "", "Dome"}}
	match.Validate()
	assert.Equal(t, []string{"Star", "Dome"}, match.Symbols)
	assert.Equal(t, time.Second, match.ResolveDelay)

	puzzle := PuzzleConfig{Size: 1, ShuffleMoves: -3}
	puzzle.Validate()
	assert.Equal(t, DefaultPuzzleConfig(), puzzle)

	snake := SnakeConfig{Grid: SnakeGrid{Width: 2, Height: 2}}
	snake.Validate()
	assert.Equal(t, 30, snake.Grid.Width)
	assert.Equal(t, 100*time.Millisecond, snake.Speed.Interval)
	assert.NotEqual(t, [2]int{snake.Start.HeadX, snake.Start.HeadY}, [2]int{snake.Start.FoodX, snake.Start.FoodY})

	blocks := BlocksConfig{}
	blocks.Validate()
	assert.Equal(t, DefaultBlocksConfig(), blocks)
}

func TestGetDefaultYAML(t *testing.T) {
	for _, id := range []string{"snake", "blocks", "match", "puzzle"} {
		assert.NotEmpty(t, GetDefaultYAML(id), id)
	}
	assert.Nil(t, GetDefaultYAML("pong"))
}

func TestLoadAppDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ARCADE_WEB_ADDR", ":9999")

	cfg, err := LoadApp(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, ":2222", cfg.SSH.Addr)
	assert.Equal(t, ":9999", cfg.Web.Addr)
	assert.Equal(t, 10*time.Minute, cfg.SSH.IdleTimeout)
	assert.Empty(t, cfg.SSH.HostKey, "an empty host key selects ~/.arcade/host_key")
}

func TestLoadAppFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30\nlog_level: debug\nssh:\n  addr: \":2323\"\n"), 0o644))

	cfg, err := LoadApp(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":2323", cfg.SSH.Addr)

	_, err = LoadApp(NewViper(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}
