// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the hosts
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// ErrUnknownGame is returned by Create and Describe for unregistered ids.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the capability set every arcade game implements.
// Games contain pure logic with no host dependencies (especially no Bubble Tea).
// The host owns the clock, input mapping, and rendering to a real device.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "puzzle").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Info returns the descriptive record shown in menus and the web API.
	Info() Info

	// Mount builds fresh session state sized to the container and starts
	// the game in its initial state. Mounting again discards the old session.
	Mount(cfg core.RuntimeConfig)

	// Step advances the session by one host tick of cfg.TickDuration().
	// Input is abstracted to semantic actions plus an optional pointer.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer,
	// replacing its previous contents.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, won, paused).
	State() core.GameState

	// Dispose stops every timer, drops pending callbacks and releases the
	// session. After Dispose, Step and Render do nothing. Safe to call twice.
	Dispose()
}

// Info is the descriptive record of a game.
type Info struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Instructions []string `json:"instructions"`
	Features     []string `json:"features"`
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID   string `json:"id"`
	Info        // embedded descriptive record
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Records are static, an unmounted instance is enough to read one
	infos[id] = f().Info()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:   id,
			Info: infos[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Describe returns the descriptive record of a registered game.
func Describe(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return GameInfo{ID: id, Info: info}, nil
}

// Create instantiates a new, unmounted game by its ID.
// Returns ErrUnknownGame if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns the registered game ids, sorted.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, g := range list {
		ids[i] = g.ID
	}
	return ids
}
