package blocks

import "github.com/vovakirdan/crescent-arcade/internal/core"

// Kind identifies one of the seven piece shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
	kindCount
)

func (k Kind) String() string {
	return [...]string{"I", "O", "T", "L", "J", "S", "Z"}[k]
}

// Mask is a piece shape, rows top to bottom.
type Mask [][]bool

var shapes = [kindCount]Mask{
	KindI: parseMask("####"),
	KindO: parseMask("##", "##"),
	KindT: parseMask("###", ".#."),
	KindL: parseMask("###", "#.."),
	KindJ: parseMask("###", "..#"),
	KindS: parseMask("##.", ".##"),
	KindZ: parseMask(".##", "##."),
}

var colors = [kindCount]core.Color{
	KindI: core.ColorGold,
	KindO: core.ColorPeriwinkle,
	KindT: core.ColorOrchid,
	KindL: core.ColorCoral,
	KindJ: core.ColorRoyal,
	KindS: core.ColorEmerald,
	KindZ: core.ColorPink,
}

// ShapeOf returns a fresh copy of the spawn mask for kind.
func ShapeOf(k Kind) Mask {
	return shapes[k].Clone()
}

// ColorOf returns the color tag placed on the board for kind.
func ColorOf(k Kind) core.Color {
	return colors[k]
}

func parseMask(rows ...string) Mask {
	m := make(Mask, len(rows))
	for y, row := range rows {
		m[y] = make([]bool, len(row))
		for x, ch := range row {
			m[y][x] = ch == '#'
		}
	}
	return m
}

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Height returns the number of rows.
func (m Mask) Height() int {
	return len(m)
}

// Rotate returns the mask turned 90 degrees clockwise:
// rotated[i][j] = m[h-1-j][i].
func (m Mask) Rotate() Mask {
	h, w := m.Height(), m.Width()
	out := make(Mask, w)
	for i := range w {
		out[i] = make([]bool, h)
		for j := range h {
			out[i][j] = m[h-1-j][i]
		}
	}
	return out
}

// Clone returns a deep copy.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	for y, row := range m {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// Equal reports whether both masks have the same size and cells.
func (m Mask) Equal(o Mask) bool {
	if m.Height() != o.Height() || m.Width() != o.Width() {
		return false
	}
	for y := range m {
		for x := range m[y] {
			if m[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells returns the offsets of every filled cell.
func (m Mask) Cells() []core.Point {
	var pts []core.Point
	for y, row := range m {
		for x, filled := range row {
			if filled {
				pts = append(pts, core.Pt(x, y))
			}
		}
	}
	return pts
}

// Piece is the falling piece: a mask anchored at its top-left cell.
type Piece struct {
	Kind  Kind
	Mask  Mask
	Color core.Color
	Pos   core.Point
}
