package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
)

func fillRow(g *board.Grid, row int, except ...int) {
	skip := make(map[int]bool)
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < g.Width(); c++ {
		if !skip[c] {
			g.Set(row, c, board.S)
		}
	}
}

func TestNewGrid(t *testing.T) {
	g, err := board.NewGrid(10, 20)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Width())
	assert.Equal(t, 20, g.Height())
	assert.Equal(t, 0, g.Filled())

	_, err = board.NewGrid(0, 20)
	assert.ErrorIs(t, err, board.ErrInvalidDimensions)
	_, err = board.NewGrid(10, -1)
	assert.ErrorIs(t, err, board.ErrInvalidDimensions)

	assert.Panics(t, func() { board.MustGrid(-1, 1) })
}

func TestGridSet(t *testing.T) {
	g := board.MustGrid(4, 4)

	assert.True(t, g.Set(0, 0, board.T))
	assert.Equal(t, board.T, g.At(0, 0))
	assert.False(t, g.Set(4, 0, board.T))
	assert.False(t, g.Set(0, -1, board.T))
	assert.False(t, g.Set(1, 1, board.Kind(9)), "unknown kinds are never stored")
	assert.Equal(t, board.Empty, g.At(1, 1))
	assert.Equal(t, board.Empty, g.At(-1, 0))
	assert.True(t, g.Set(0, 0, board.Empty))
	assert.True(t, g.IsEmpty(0, 0))
	assert.False(t, g.IsEmpty(9, 9))
}

func TestGridPlace(t *testing.T) {
	t.Run("writes kind id", func(t *testing.T) {
		g := board.MustGrid(10, 20)
		p := board.NewPiece(board.L)
		p.MoveTo(18, 0)

		assert.Equal(t, 4, g.Place(p))
		for _, c := range p.Cells() {
			assert.Equal(t, board.L, g.At(c.Row, c.Col))
		}
	})

	t.Run("drops cells above the board", func(t *testing.T) {
		g := board.MustGrid(10, 20)
		p := board.NewPiece(board.I)
		p.TryRotate(g)
		p.MoveTo(-2, 0)

		assert.Equal(t, 2, g.Place(p))
		assert.Equal(t, 2, g.Filled())
	})

	t.Run("ignores occupied cells", func(t *testing.T) {
		g := board.MustGrid(10, 20)
		g.Set(19, 0, board.Z)
		p := board.NewPiece(board.O)
		p.MoveTo(18, 0)

		assert.Equal(t, 3, g.Place(p))
		assert.Equal(t, board.Z, g.At(19, 0))
	})
}

func TestClearFullRows(t *testing.T) {
	t.Run("completing a row with place", func(t *testing.T) {
		g := board.MustGrid(10, 20)
		fillRow(g, 19, 5)
		require.Empty(t, g.FullRows())

		p := board.NewPiece(board.I)
		p.TryRotate(g)
		p.MoveTo(16, 5)
		g.Place(p)
		require.Equal(t, []int{19}, g.FullRows())

		assert.Equal(t, 1, g.ClearFullRows())
		for c := 0; c < 10; c++ {
			if c == 5 {
				assert.Equal(t, board.I, g.At(19, c))
				continue
			}
			assert.Equal(t, board.Empty, g.At(19, c))
		}
		assert.Equal(t, 3, g.Filled())
		assert.True(t, g.IsEmpty(16, 5))
	})

	t.Run("lone cell fills the row", func(t *testing.T) {
		g := board.MustGrid(10, 20)
		fillRow(g, 19, 5)
		g.Set(19, 5, board.O)

		assert.Equal(t, 1, g.ClearFullRows())
		for c := 0; c < 10; c++ {
			assert.Equal(t, board.Empty, g.At(19, c))
		}
	})

	t.Run("tetris with interleaved rows", func(t *testing.T) {
		g := board.MustGrid(4, 8)
		fillRow(g, 7)
		fillRow(g, 6)
		g.Set(5, 0, board.T)
		fillRow(g, 4)
		fillRow(g, 3)
		g.Set(2, 3, board.J)

		assert.Equal(t, 4, g.ClearFullRows())
		assert.Equal(t, board.T, g.At(7, 0))
		assert.Equal(t, board.J, g.At(6, 3))
		assert.Equal(t, 2, g.Filled())
		assert.Equal(t, 0, g.ClearFullRows())
	})

	t.Run("every row full", func(t *testing.T) {
		g := board.MustGrid(3, 5)
		for r := 0; r < 5; r++ {
			fillRow(g, r)
		}
		assert.Equal(t, 5, g.ClearFullRows())
		assert.Equal(t, 0, g.Filled())
	})
}

func TestClearFullRowsPreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for iter := 0; iter < 200; iter++ {
		width, height := 2+rng.IntN(8), 1+rng.IntN(20)
		g := board.MustGrid(width, height)

		survivors := [][]board.Kind{}
		full := 0
		for r := 0; r < height; r++ {
			if rng.IntN(3) == 0 {
				fillRow(g, r)
				full++
				continue
			}
			for c := 0; c < width; c++ {
				if rng.IntN(2) == 0 {
					g.Set(r, c, board.Kinds[rng.IntN(board.KindCount)])
				}
			}
			if len(g.FullRows()) > full {
				g.Set(r, rng.IntN(width), board.Empty)
			}
			survivors = append(survivors, g.Rows()[r])
		}

		require.Equal(t, full, g.ClearFullRows())
		rows := g.Rows()
		require.Len(t, rows, height)
		for r := 0; r < full; r++ {
			assert.Equal(t, make([]board.Kind, width), rows[r])
		}
		assert.Equal(t, survivors, rows[full:])
		assert.Equal(t, 0, g.ClearFullRows())
	}
}

func TestGridCloneAndReset(t *testing.T) {
	g := board.MustGrid(4, 4)
	g.Set(3, 3, board.S)
	c := g.Clone()
	g.Reset()

	assert.Equal(t, 0, g.Filled())
	assert.Equal(t, board.S, c.At(3, 3))
}
