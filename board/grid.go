package board

import (
	"errors"
	"fmt"
)

// Standard playfield dimensions.
const (
	StandardWidth  = 10
	StandardHeight = 20
)

// ErrInvalidDimensions is returned when a grid is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("board: grid dimensions must be positive")

// Grid stores locked cells row-major. A zero cell is empty; any other value is
// the Kind of the piece that locked there. Dimensions are fixed at creation.
type Grid struct {
	width, height int
	cells         []Kind
}

// NewGrid allocates an empty width x height grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Kind, width*height),
	}, nil
}

// MustGrid is NewGrid for dimensions known to be valid. It panics otherwise.
func MustGrid(width, height int) *Grid {
	g, err := NewGrid(width, height)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Contains reports whether (row, col) is on the board.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col), or Empty when it is off the board.
func (g *Grid) At(row, col int) Kind {
	if !g.Contains(row, col) {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// IsEmpty reports whether (row, col) is on the board and unoccupied.
func (g *Grid) IsEmpty(row, col int) bool {
	return g.Contains(row, col) && g.cells[row*g.width+col] == Empty
}

// Set writes kind into (row, col). Off-board writes and unknown kinds are
// ignored; the return value reports whether the cell was written.
func (g *Grid) Set(row, col int, kind Kind) bool {
	if !g.Contains(row, col) || (kind != Empty && !kind.Valid()) {
		return false
	}
	g.cells[row*g.width+col] = kind
	return true
}

// Place locks the piece into the grid. Cells above the board are dropped, and
// a cell that is already occupied is left untouched. It returns the number of
// cells written.
func (g *Grid) Place(p *Piece) int {
	if !p.kind.Valid() {
		return 0
	}
	written := 0
	for _, c := range p.Cells() {
		if !g.Contains(c.Row, c.Col) {
			continue
		}
		idx := c.Row*g.width + c.Col
		if g.cells[idx] != Empty {
			continue
		}
		g.cells[idx] = p.kind
		written++
	}
	return written
}

// rowFull reports whether every cell of the row is occupied.
func (g *Grid) rowFull(row int) bool {
	for _, v := range g.cells[row*g.width : (row+1)*g.width] {
		if v == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indexes of every full row, top to bottom.
func (g *Grid) FullRows() []int {
	var rows []int
	for r := 0; r < g.height; r++ {
		if g.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearFullRows removes every full row, shifts the remaining rows down in
// their original order and fills the top with empty rows. It returns the
// number of rows removed.
func (g *Grid) ClearFullRows() int {
	// Walk bottom-up copying surviving rows to the write cursor, so each row
	// is inspected exactly once regardless of how many are removed.
	write := g.height - 1
	for read := g.height - 1; read >= 0; read-- {
		if g.rowFull(read) {
			continue
		}
		if write != read {
			copy(g.cells[write*g.width:(write+1)*g.width], g.cells[read*g.width:(read+1)*g.width])
		}
		write--
	}
	cleared := write + 1
	clear(g.cells[:cleared*g.width])
	return cleared
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]Kind {
	rows := make([][]Kind, g.height)
	for r := range rows {
		rows[r] = make([]Kind, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}
	return rows
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Kind, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int {
	n := 0
	for _, v := range g.cells {
		if v != Empty {
			n++
		}
	}
	return n
}
