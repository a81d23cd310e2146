package blocks

import (
	"math/rand"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// Phase is the block-stack session state.
type Phase int

const (
	PhaseIdle     Phase = iota // waiting for the first key
	PhaseFalling               // a piece is dropping
	PhaseGameOver              // the stack reached the top
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// TickResult reports what one gravity step did.
type TickResult struct {
	Dropped  bool
	Locked   bool
	Cleared  int
	GameOver bool
}

// Engine is the falling-block simulation. Board cells hold the color tag of
// the piece that was locked there; core.ColorDefault means empty.
type Engine struct {
	cfg config.BlocksConfig
	rng *rand.Rand

	phase Phase
	board [][]core.Color
	piece Piece
	score int
	lines int
}

// NewEngine creates an idle engine with an empty board.
func NewEngine(cfg config.BlocksConfig, rng *rand.Rand) *Engine {
	e := &Engine{cfg: cfg, rng: rng}
	e.Restart()
	return e
}

// Restart clears the board and returns to Idle.
func (e *Engine) Restart() {
	e.board = make([][]core.Color, e.cfg.Board.Rows)
	for y := range e.board {
		e.board[y] = make([]core.Color, e.cfg.Board.Cols)
	}
	e.phase = PhaseIdle
	e.piece = Piece{}
	e.score = 0
	e.lines = 0
}

// Start spawns the first piece. Only meaningful while idle.
func (e *Engine) Start() bool {
	if e.phase != PhaseIdle {
		return false
	}
	e.phase = PhaseFalling
	return e.SpawnPiece()
}

// SpawnPiece puts a uniformly chosen piece at the top center. If it overlaps
// the stack the game is over.
func (e *Engine) SpawnPiece() bool {
	k := Kind(e.rng.Intn(int(kindCount)))
	return e.spawn(k)
}

func (e *Engine) spawn(k Kind) bool {
	mask := ShapeOf(k)
	e.piece = Piece{
		Kind:  k,
		Mask:  mask,
		Color: ColorOf(k),
		Pos:   core.Pt(e.cfg.Board.Cols/2-mask.Width()/2, 0),
	}
	if !e.fits(e.piece.Mask, e.piece.Pos) {
		e.phase = PhaseGameOver
		return false
	}
	return true
}

// AttemptMove shifts the piece if every cell stays legal.
func (e *Engine) AttemptMove(dx, dy int) bool {
	if e.phase != PhaseFalling {
		return false
	}
	pos := e.piece.Pos.Add(core.Pt(dx, dy))
	if !e.fits(e.piece.Mask, pos) {
		return false
	}
	e.piece.Pos = pos
	return true
}

// AttemptRotate turns the piece clockwise in place if the result is legal.
func (e *Engine) AttemptRotate() bool {
	if e.phase != PhaseFalling {
		return false
	}
	rotated := e.piece.Mask.Rotate()
	if !e.fits(rotated, e.piece.Pos) {
		return false
	}
	e.piece.Mask = rotated
	return true
}

// fits checks every filled cell: inside the columns, above the floor, and
// not on a placed cell. Cells above the top edge are allowed.
func (e *Engine) fits(m Mask, pos core.Point) bool {
	for _, c := range m.Cells() {
		x, y := pos.X+c.X, pos.Y+c.Y
		if x < 0 || x >= e.cfg.Board.Cols || y >= e.cfg.Board.Rows {
			return false
		}
		if y >= 0 && e.board[y][x] != core.ColorDefault {
			return false
		}
	}
	return true
}

// Tick drops the piece one row, or locks it and spawns the next one.
func (e *Engine) Tick() TickResult {
	if e.phase != PhaseFalling {
		return TickResult{}
	}
	if e.AttemptMove(0, 1) {
		return TickResult{Dropped: true}
	}

	res := TickResult{Locked: true}
	if !e.lock() {
		e.phase = PhaseGameOver
		res.GameOver = true
		return res
	}
	res.Cleared = e.clearRows()
	e.lines += res.Cleared
	e.score += res.Cleared * e.cfg.Scoring.Line

	if !e.SpawnPiece() {
		res.GameOver = true
	}
	return res
}

// lock writes the piece into the board. Returns false when part of the
// piece is still above the top edge.
func (e *Engine) lock() bool {
	inside := true
	for _, c := range e.piece.Mask.Cells() {
		x, y := e.piece.Pos.X+c.X, e.piece.Pos.Y+c.Y
		if y < 0 {
			inside = false
			continue
		}
		e.board[y][x] = e.piece.Color
	}
	return inside
}

// clearRows removes full rows scanning bottom to top. After a removal the
// same row index is checked again since the rows above shifted into it.
func (e *Engine) clearRows() int {
	cleared := 0
	for y := len(e.board) - 1; y >= 0; {
		if !e.rowFull(y) {
			y--
			continue
		}
		copy(e.board[1:y+1], e.board[:y])
		e.board[0] = make([]core.Color, e.cfg.Board.Cols)
		cleared++
	}
	return cleared
}

func (e *Engine) rowFull(y int) bool {
	for _, c := range e.board[y] {
		if c == core.ColorDefault {
			return false
		}
	}
	return true
}

// Phase returns the current session state.
func (e *Engine) Phase() Phase { return e.phase }

// Piece returns a copy of the falling piece.
func (e *Engine) Piece() Piece {
	p := e.piece
	p.Mask = p.Mask.Clone()
	return p
}

// Cell returns the placed color at (x, y), ColorDefault when empty or out of range.
func (e *Engine) Cell(x, y int) core.Color {
	if y < 0 || y >= len(e.board) || x < 0 || x >= e.cfg.Board.Cols {
		return core.ColorDefault
	}
	return e.board[y][x]
}

// Size returns the board dimensions.
func (e *Engine) Size() (cols, rows int) { return e.cfg.Board.Cols, e.cfg.Board.Rows }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the number of cleared rows.
func (e *Engine) Lines() int { return e.lines }
