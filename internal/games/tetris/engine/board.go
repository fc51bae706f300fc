package engine

import "strings"

// Default playfield dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Board is the grid of locked cells. Row 0 is the top of the visible field.
// Its dimensions never change after construction.
type Board struct {
	width  int
	height int
	cells  [][]PieceType
}

// NewBoard creates an empty board of the given size.
func NewBoard(width, height int) *Board {
	b := &Board{
		width:  width,
		height: height,
	}
	b.Reset()
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of visible rows.
func (b *Board) Height() int {
	return b.height
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = make([][]PieceType, b.height)
	for y := range b.cells {
		b.cells[y] = make([]PieceType, b.width)
	}
}

// Cell returns the piece locked at (x, y), or Empty when the position is
// outside the grid.
func (b *Board) Cell(x, y int) PieceType {
	if !b.inside(x, y) {
		return Empty
	}
	return b.cells[y][x]
}

// set writes a cell directly. Out-of-bounds writes are ignored.
func (b *Board) set(x, y int, p PieceType) {
	if b.inside(x, y) {
		b.cells[y][x] = p
	}
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Collides reports whether shape placed at origin (ox, oy) would leave the
// side walls, reach past the floor, or overlap a locked cell. Cells above
// row 0 only check the side walls, so pieces may spawn and rotate there.
func (b *Board) Collides(shape Shape, ox, oy int) bool {
	for _, c := range shape {
		x, y := ox+c.X, oy+c.Y
		if x < 0 || x >= b.width {
			return true
		}
		if y >= b.height {
			return true
		}
		if y < 0 {
			continue
		}
		if b.cells[y][x] != Empty {
			return true
		}
	}
	return false
}

// Lock writes p into every cell of shape at (ox, oy). Cells above the board
// are dropped.
func (b *Board) Lock(shape Shape, ox, oy int, p PieceType) {
	for _, c := range shape {
		b.set(ox+c.X, oy+c.Y, p)
	}
}

// ClearLines removes every full row, shifts the rows above it down and
// returns how many rows were removed.
func (b *Board) ClearLines() int {
	kept := make([][]PieceType, 0, b.height)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]PieceType, cleared, b.height)
	for i := range fresh {
		fresh[i] = make([]PieceType, b.width)
	}
	b.cells = append(fresh, kept...)
	return cleared
}

func rowFull(row []PieceType) bool {
	for _, v := range row {
		if v == Empty {
			return false
		}
	}
	return true
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]PieceType {
	out := make([][]PieceType, b.height)
	for y, row := range b.cells {
		out[y] = append([]PieceType(nil), row...)
	}
	return out
}

// String renders the grid one row per line, using "." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y, row := range b.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			sb.WriteString(v.String())
		}
	}
	return sb.String()
}
