package board

// Piece is a tetromino positioned on a grid. Its absolute cells are the
// shape for the current rotation offset by the origin.
type Piece struct {
	kind     Kind
	rotation int
	origin   Position
}

// NewPiece returns a piece of the given kind at rotation 0 and origin (0, 0).
func NewPiece(kind Kind) *Piece {
	return &Piece{kind: kind}
}

func (p *Piece) Kind() Kind       { return p.kind }
func (p *Piece) Rotation() int    { return p.rotation }
func (p *Piece) Origin() Position { return p.origin }

// MoveTo places the piece's origin at (row, col) without validation.
func (p *Piece) MoveTo(row, col int) {
	p.origin = Position{Row: row, Col: col}
}

// Width is the number of columns the piece spans in its spawn orientation.
func (p *Piece) Width() int {
	maxCol := 0
	for _, c := range Shape(p.kind, 0) {
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}
	return maxCol + 1
}

// Cells returns the absolute grid cells the piece occupies.
func (p *Piece) Cells() [4]Position {
	cells := Shape(p.kind, p.rotation)
	for i := range cells {
		cells[i] = cells[i].Add(p.origin)
	}
	return cells
}

// IsValid reports whether every cell lies inside the side and bottom walls
// and does not overlap a locked cell. Rows above the board are allowed so a
// piece can enter from the top; they are exempt from the overlap check.
func (p *Piece) IsValid(g *Grid) bool {
	for _, c := range p.Cells() {
		if c.Col < 0 || c.Col >= g.width || c.Row >= g.height {
			return false
		}
		if c.Row >= 0 && g.cells[c.Row*g.width+c.Col] != Empty {
			return false
		}
	}
	return true
}

// TryMove shifts the piece by (dRow, dCol) if the result is valid. On failure
// the piece is left exactly where it was.
func (p *Piece) TryMove(dRow, dCol int, g *Grid) bool {
	prev := p.origin
	p.origin = Position{Row: prev.Row + dRow, Col: prev.Col + dCol}
	if !p.IsValid(g) {
		p.origin = prev
		return false
	}
	return true
}

// TryRotate advances to the next rotation state if the result is valid.
// There is no wall kick: a colliding rotation is simply rejected.
func (p *Piece) TryRotate(g *Grid) bool {
	prev := p.rotation
	p.rotation = (prev + 1) % RotationCount
	if !p.IsValid(g) {
		p.rotation = prev
		return false
	}
	return true
}

// DropDistance is how many rows the piece can still fall before resting.
func (p *Piece) DropDistance(g *Grid) int {
	ghost := *p
	n := 0
	for ghost.TryMove(1, 0, g) {
		n++
	}
	return n
}

// Clone returns an independent copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
