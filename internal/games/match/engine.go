package match

import (
	"math/rand"

	"github.com/vovakirdan/crescent-arcade/internal/config"
)

// Card is one position in the deck.
type Card struct {
	ID       int
	Symbol   string
	Revealed bool
	Matched  bool
}

// FlipResult reports what Flip did. When Resolve is set the caller must
// call Engine.Resolve after its delay; flips are locked until then.
type FlipResult struct {
	Flipped bool
	Resolve bool
}

// ResolveResult reports the outcome of a pending pair.
type ResolveResult struct {
	Resolved bool
	Matched  bool
	Won      bool
}

// Engine is the memory-match simulation. It holds no timer; the delay
// between the second flip and Resolve belongs to the caller.
type Engine struct {
	cfg config.MatchConfig
	rng *rand.Rand

	cards  []Card
	faceUp []int
	locked bool
	moves  int
	pairs  int
}

// NewEngine deals a freshly shuffled deck.
func NewEngine(cfg config.MatchConfig, rng *rand.Rand) *Engine {
	e := &Engine{cfg: cfg, rng: rng}
	e.Deal()
	return e
}

// Deal builds a deck with every symbol exactly twice, shuffles it and
// resets counters.
func (e *Engine) Deal() {
	e.cards = make([]Card, 0, len(e.cfg.Symbols)*2)
	for _, s := range e.cfg.Symbols {
		e.cards = append(e.cards, Card{Symbol: s}, Card{Symbol: s})
	}
	e.rng.Shuffle(len(e.cards), func(i, j int) {
		e.cards[i], e.cards[j] = e.cards[j], e.cards[i]
	})
	for i := range e.cards {
		e.cards[i].ID = i
	}
	e.faceUp = e.faceUp[:0]
	e.locked = false
	e.moves = 0
	e.pairs = 0
}

// Flip reveals card id. It is a no-op while locked, for an unknown id,
// for a card already face up or matched, or when two cards are face up.
func (e *Engine) Flip(id int) FlipResult {
	if e.locked || id < 0 || id >= len(e.cards) || len(e.faceUp) >= 2 {
		return FlipResult{}
	}
	c := &e.cards[id]
	if c.Revealed || c.Matched {
		return FlipResult{}
	}

	c.Revealed = true
	e.faceUp = append(e.faceUp, id)
	if len(e.faceUp) < 2 {
		return FlipResult{Flipped: true}
	}
	e.locked = true
	e.moves++
	return FlipResult{Flipped: true, Resolve: true}
}

// Resolve settles the two face-up cards: equal symbols stay matched,
// anything else is hidden again. Flipping is unlocked afterwards.
func (e *Engine) Resolve() ResolveResult {
	if len(e.faceUp) != 2 {
		return ResolveResult{}
	}
	a, b := &e.cards[e.faceUp[0]], &e.cards[e.faceUp[1]]
	res := ResolveResult{Resolved: true, Matched: a.Symbol == b.Symbol}
	if res.Matched {
		a.Matched, b.Matched = true, true
		e.pairs++
	}
	a.Revealed, b.Revealed = false, false
	e.faceUp = e.faceUp[:0]
	e.locked = false
	res.Won = e.Won()
	return res
}

// Cards returns a copy of the deck in position order.
func (e *Engine) Cards() []Card {
	out := make([]Card, len(e.cards))
	copy(out, e.cards)
	return out
}

// Locked reports whether a resolution is pending.
func (e *Engine) Locked() bool { return e.locked }

// Moves returns the number of completed pair attempts.
func (e *Engine) Moves() int { return e.moves }

// Pairs returns the number of matched pairs.
func (e *Engine) Pairs() int { return e.pairs }

// TotalPairs returns the number of distinct symbols in the deck.
func (e *Engine) TotalPairs() int { return len(e.cards) / 2 }

// Won reports whether every pair has been found.
func (e *Engine) Won() bool { return len(e.cards) > 0 && e.pairs == e.TotalPairs() }

// Score returns pairs times the per-pair points.
func (e *Engine) Score() int { return e.pairs * e.cfg.PairPoints }

// Columns returns the configured grid width.
func (e *Engine) Columns() int { return e.cfg.Columns }
