package engine

import "fmt"

// PieceType identifies one of the seven tetrominoes.
// The zero value is an empty cell, so a PieceType doubles as a board cell value.
type PieceType uint8

const (
	Empty PieceType = iota
	I
	J
	L
	O
	S
	T
	Z
)

// PieceTypes lists every tetromino in canonical order.
var PieceTypes = [7]PieceType{I, J, L, O, S, T, Z}

// String returns the letter for the piece, or "." for an empty cell.
func (p PieceType) String() string {
	switch p {
	case Empty:
		return "."
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("PieceType(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the seven tetrominoes.
func (p PieceType) Valid() bool {
	return p >= I && p <= Z
}

// ParsePieceType converts a letter back into a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	for _, p := range PieceTypes {
		if p.String() == s {
			return p, nil
		}
	}
	return Empty, fmt.Errorf("engine: unknown piece %q", s)
}

// Offset is a cell position relative to a piece origin. Y grows downwards.
type Offset struct {
	X, Y int
}

// Shape is the set of four occupied cells of a piece in one rotation state.
type Shape [4]Offset

// RotationStates is the number of rotation states every piece has.
const RotationStates = 4

// shapes holds the SRS cell layout of each piece, indexed by PieceType and
// rotation (0 = spawn, 1 = R, 2 = 180, 3 = L). Every layout sits one row lower
// in its box than the usual SRS chart, so a piece spawned two rows above the
// field already covers row 0 and a blocked spawn ends the game.
var shapes = [...][RotationStates]Shape{
	I: {
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 1}, {2, 2}, {2, 3}, {2, 4}},
		{{0, 3}, {1, 3}, {2, 3}, {3, 3}},
		{{1, 1}, {1, 2}, {1, 3}, {1, 4}},
	},
	J: {
		{{0, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {2, 3}},
		{{1, 1}, {1, 2}, {0, 3}, {1, 3}},
	},
	L: {
		{{2, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {1, 3}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {0, 3}},
		{{0, 1}, {1, 1}, {1, 2}, {1, 3}},
	},
	O: {
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
	},
	S: {
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{1, 1}, {1, 2}, {2, 2}, {2, 3}},
		{{1, 2}, {2, 2}, {0, 3}, {1, 3}},
		{{0, 1}, {0, 2}, {1, 2}, {1, 3}},
	},
	T: {
		{{1, 1}, {0, 2}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {1, 3}},
		{{1, 1}, {0, 2}, {1, 2}, {1, 3}},
	},
	Z: {
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{2, 1}, {1, 2}, {2, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {1, 3}, {2, 3}},
		{{1, 1}, {0, 2}, {1, 2}, {0, 3}},
	},
}

// ShapeOf returns the cells of piece p in rotation state rot.
// rot is taken modulo RotationStates.
func ShapeOf(p PieceType, rot int) Shape {
	if !p.Valid() {
		return Shape{}
	}
	return shapes[p][normalizeRotation(rot)]
}

func normalizeRotation(rot int) int {
	return ((rot % RotationStates) + RotationStates) % RotationStates
}

// Transition is a rotation from one state to another.
type Transition struct {
	From, To int
}

// String renders the transition as "from>to".
func (t Transition) String() string {
	return fmt.Sprintf("%d>%d", t.From, t.To)
}

// Kick tables in board coordinates (y down). Each list is tried in order.
var (
	jlstzKicks = map[Transition][]Offset{
		{0, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{1, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{1, 2}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{2, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{2, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{3, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{3, 0}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{0, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	}

	iKicks = map[Transition][]Offset{
		{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	}

	inPlace = []Offset{{0, 0}}
)

// KickTrials returns the ordered offsets tried when piece p rotates from one
// state to another. Pieces or transitions without a table entry get a single
// in-place trial. The returned slice is a copy.
func KickTrials(p PieceType, from, to int) []Offset {
	t := Transition{From: normalizeRotation(from), To: normalizeRotation(to)}

	var table map[Transition][]Offset
	switch p {
	case I:
		table = iKicks
	case J, L, S, T, Z:
		table = jlstzKicks
	}

	trials, ok := table[t]
	if !ok {
		trials = inPlace
	}
	out := make([]Offset, len(trials))
	copy(out, trials)
	return out
}
