package puzzle

import (
	"math/rand"

	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// Empty is the tile id stored at the empty position.
const Empty = -1

// Engine is an N×N sliding puzzle. Every tile carries its identity: the
// row-major index of the position it occupies when solved. The empty
// position's home is the bottom-right corner.
type Engine struct {
	size  int
	rng   *rand.Rand
	tiles []int // tile id by row-major position
	empty core.Point
	moves int
}

// NewEngine creates a solved puzzle of the given size.
func NewEngine(size int, rng *rand.Rand) *Engine {
	e := &Engine{size: size, rng: rng}
	e.Reset()
	return e
}

// Reset puts every tile on its home position.
func (e *Engine) Reset() {
	n := e.size * e.size
	e.tiles = make([]int, n)
	for i := range n - 1 {
		e.tiles[i] = i
	}
	e.tiles[n-1] = Empty
	e.empty = core.Pt(e.size-1, e.size-1)
	e.moves = 0
}

// AttemptMove slides the tile at (x, y) into the empty position. Only a
// tile one step away horizontally or vertically can move.
func (e *Engine) AttemptMove(x, y int) bool {
	p := core.Pt(x, y)
	if !p.In(e.size, e.size) || !p.Adjacent(e.empty) {
		return false
	}
	e.swap(p)
	e.moves++
	return true
}

func (e *Engine) swap(p core.Point) {
	i, j := e.index(p), e.index(e.empty)
	e.tiles[i], e.tiles[j] = e.tiles[j], e.tiles[i]
	e.empty = p
}

// IsSolved reports whether every tile sits on its identity position.
func (e *Engine) IsSolved() bool {
	for pos, id := range e.tiles {
		if id != Empty && id != pos {
			return false
		}
	}
	return true
}

// Shuffle resets to solved and performs the given number of random legal
// moves, each chosen uniformly among the tiles next to the empty position.
// A walk that ends on the solved layout takes one more move.
func (e *Engine) Shuffle(moves int) {
	e.Reset()
	for range moves {
		e.randomMove()
	}
	if e.IsSolved() {
		e.randomMove()
	}
	e.moves = 0
}

func (e *Engine) randomMove() {
	cand := e.Movable()
	e.swap(cand[e.rng.Intn(len(cand))])
}

// Movable returns the tile positions adjacent to the empty position.
func (e *Engine) Movable() []core.Point {
	var out []core.Point
	for _, d := range []core.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		if p := e.empty.Add(d); p.In(e.size, e.size) {
			out = append(out, p)
		}
	}
	return out
}

// TileAt returns the tile id at (x, y), Empty for the empty position.
func (e *Engine) TileAt(x, y int) int {
	p := core.Pt(x, y)
	if !p.In(e.size, e.size) {
		return Empty
	}
	return e.tiles[e.index(p)]
}

// Home returns the solved position of tile id.
func (e *Engine) Home(id int) core.Point {
	return core.Pt(id%e.size, id/e.size)
}

// EmptyPos returns the empty position.
func (e *Engine) EmptyPos() core.Point { return e.empty }

// Size returns N.
func (e *Engine) Size() int { return e.size }

// Moves returns the number of player moves since the last shuffle.
func (e *Engine) Moves() int { return e.moves }

// Layout returns a copy of the tile ids in row-major order.
func (e *Engine) Layout() []int {
	out := make([]int, len(e.tiles))
	copy(out, e.tiles)
	return out
}

func (e *Engine) index(p core.Point) int {
	return p.Y*e.size + p.X
}
