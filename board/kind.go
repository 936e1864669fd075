// Package board holds the playfield data model: tetromino kinds and their
// rotation tables, the active Piece, and the Grid of locked cells.
package board

// Position is a (row, col) offset. Shapes are defined as Positions relative to
// a piece's local origin.
type Position struct {
	Row, Col int
}

// Add returns the sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

// Kind identifies a tetromino. The numeric value doubles as the id written into
// the grid when a piece locks, so Empty must stay zero.
type Kind uint8

const (
	Empty Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

// Kinds lists every tetromino kind in id order.
var Kinds = [KindCount]Kind{I, O, T, S, Z, J, L}

var kindNames = [...]string{"Empty", "I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Valid reports whether k is one of the seven tetromino kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= L
}

// shape is one orientation of a tetromino: always exactly four cells.
type shape [4]Position

// rotations holds four orientations per kind. Kinds with fewer distinct
// orientations alias entries so rotation is always modulo four.
var rotations = [KindCount + 1][4]shape{
	I: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	},
	O: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	T: {
		{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		{{1, 0}, {1, 1}, {1, 2}, {0, 1}},
		{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	},
	S: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	J: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 0}, {2, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	L: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		{{0, 0}, {0, 1}, {0, 2}, {1, 0}},
		{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
	},
}

// RotationCount is the number of rotation states every kind cycles through.
const RotationCount = 4

// Shape returns the four local cell offsets of kind k in the given rotation.
// It returns the zero shape for Empty or unknown kinds.
func Shape(k Kind, rotation int) [4]Position {
	if !k.Valid() {
		return [4]Position{}
	}
	return rotations[k][mod(rotation, RotationCount)]
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
