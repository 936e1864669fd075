package session_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/session"
)

type recorder struct {
	signals []session.Signal
}

func (r *recorder) Emit(s session.Signal) { r.signals = append(r.signals, s) }

func (r *recorder) count(s session.Signal) int {
	n := 0
	for _, got := range r.signals {
		if got == s {
			n++
		}
	}
	return n
}

func newSession(t *testing.T, kinds ...board.Kind) (*session.Session, *session.SequenceSource, *recorder) {
	t.Helper()
	src := session.NewSequenceSource(kinds...)
	rec := &recorder{}
	s, err := session.New(session.DefaultConfig(), session.Options{Source: src, Sink: rec})
	require.NoError(t, err)
	return s, src, rec
}

func TestNew(t *testing.T) {
	t.Run("spawns centered with a preview", func(t *testing.T) {
		s, src, _ := newSession(t, board.I, board.T, board.O)

		require.NotNil(t, s.Active())
		assert.Equal(t, board.I, s.Active().Kind())
		assert.Equal(t, board.Position{Row: 0, Col: 3}, s.Active().Origin())
		assert.Equal(t, board.T, s.Preview().Kind())
		assert.Equal(t, 2, src.Drawn())
		assert.True(t, s.IsActive())
		assert.Equal(t, session.PhaseFalling, s.Phase())
		assert.Equal(t, 1, s.Level())
		assert.Equal(t, int64(1000), s.FallInterval())
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		_, err := session.New(session.Config{Width: 0, Height: 20}, session.Options{})
		assert.ErrorIs(t, err, board.ErrInvalidDimensions)
	})

	t.Run("defaults collaborators", func(t *testing.T) {
		s, err := session.New(session.Config{Width: 10, Height: 20}, session.Options{})
		require.NoError(t, err)
		assert.True(t, s.Active().Kind().Valid())
		assert.True(t, s.Preview().Kind().Valid())
	})
}

func TestMovement(t *testing.T) {
	s, _, rec := newSession(t, board.O)

	assert.True(t, s.MoveLeft())
	assert.Equal(t, 3, s.Active().Origin().Col)
	assert.True(t, s.MoveRight())
	assert.True(t, s.Rotate())
	assert.Equal(t, 2, rec.count(session.SignalMove))
	assert.Equal(t, 1, rec.count(session.SignalRotate))

	for s.MoveLeft() {
	}
	assert.Equal(t, 0, s.Active().Origin().Col)
	assert.Equal(t, 6, rec.count(session.SignalMove), "rejected moves emit nothing")
}

func TestGravity(t *testing.T) {
	t.Run("steps once per interval", func(t *testing.T) {
		s, _, _ := newSession(t, board.T)

		assert.False(t, s.Fall(999))
		assert.Equal(t, 0, s.Active().Origin().Row)
		assert.True(t, s.Fall(1000))
		assert.Equal(t, 1, s.Active().Origin().Row)
		assert.False(t, s.Fall(1500))
		assert.True(t, s.Fall(2000))
		assert.Equal(t, 2, s.Active().Origin().Row)
	})

	t.Run("locks when blocked", func(t *testing.T) {
		s, src, rec := newSession(t, board.O, board.I)
		now := int64(0)
		for s.Stats().PiecesLocked == 0 {
			now += 1000
			require.True(t, s.Fall(now))
		}

		assert.Equal(t, board.O, s.Grid().At(19, 4))
		assert.Equal(t, board.O, s.Grid().At(18, 5))
		assert.Equal(t, 1, rec.count(session.SignalDrop))
		assert.Equal(t, 3, src.Drawn())
		assert.Equal(t, board.I, s.Active().Kind())
		assert.Equal(t, 0, s.Active().Origin().Row)
	})

	t.Run("shift postpones gravity", func(t *testing.T) {
		s, _, _ := newSession(t, board.T)
		s.Shift(500)
		assert.False(t, s.Fall(1000))
		assert.True(t, s.Fall(1500))
	})
}

func TestSoftDrop(t *testing.T) {
	s, _, _ := newSession(t, board.O)

	for i := 0; i < 18; i++ {
		require.True(t, s.SoftDrop())
	}
	assert.Equal(t, 18, s.Score())
	assert.False(t, s.SoftDrop(), "resting piece locks instead")
	assert.Equal(t, 1, s.Stats().PiecesLocked)
	assert.Equal(t, 18, s.Stats().SoftDropCells)
	assert.Equal(t, 18, s.Score())
}

func TestHardDrop(t *testing.T) {
	t.Run("scores per cell and locks", func(t *testing.T) {
		s, _, rec := newSession(t, board.O)

		assert.Equal(t, 18, s.HardDrop())
		assert.Equal(t, 18*session.HardDropPoints, s.Score())
		assert.Equal(t, board.O, s.Grid().At(19, 4))
		assert.Equal(t, 1, rec.count(session.SignalDrop))
		assert.Equal(t, 0, s.Active().Origin().Row)
	})

	t.Run("resting piece locks and spawns exactly once", func(t *testing.T) {
		s, src, rec := newSession(t, board.O)
		s.Grid().Set(10, 4, board.Z)
		for s.Active().TryMove(1, 0, s.Grid()) {
		}
		require.Equal(t, 8, s.Active().Origin().Row)
		drawn := src.Drawn()

		assert.Equal(t, 0, s.HardDrop())
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, drawn+1, src.Drawn())
		assert.Equal(t, 1, s.Stats().PiecesLocked)
		assert.Equal(t, 1, rec.count(session.SignalDrop))
		assert.Equal(t, board.O, s.Grid().At(9, 5))
		assert.True(t, s.IsActive())
		assert.Equal(t, 0, s.Active().Origin().Row)
	})
}

func TestLineClear(t *testing.T) {
	s, _, rec := newSession(t, board.O)
	for _, row := range []int{18, 19} {
		for c := 0; c < 10; c++ {
			if c != 4 && c != 5 {
				s.Grid().Set(row, c, board.L)
			}
		}
	}

	assert.Equal(t, 18, s.HardDrop())
	assert.Equal(t, 2, s.Lines())
	assert.Equal(t, 18*session.HardDropPoints+300, s.Score())
	assert.Equal(t, 0, s.Grid().Filled())
	assert.Equal(t, 1, rec.count(session.SignalClear))
	assert.Equal(t, 0, rec.count(session.SignalLevelUp))
	assert.Equal(t, [4]int{0, 1, 0, 0}, s.Stats().Clears)
}

func TestGameOver(t *testing.T) {
	s, _, rec := newSession(t, board.O)
	s.Grid().Set(2, 4, board.T)

	assert.Equal(t, 0, s.HardDrop())
	assert.False(t, s.IsActive())
	assert.Nil(t, s.Active())
	assert.Equal(t, session.PhaseGameOver, s.Phase())
	assert.Equal(t, 1, rec.count(session.SignalGameOver))

	assert.False(t, s.MoveLeft())
	assert.False(t, s.Rotate())
	assert.False(t, s.SoftDrop())
	assert.Equal(t, 0, s.HardDrop())
	assert.False(t, s.Fall(1_000_000))
	s.Hold(session.Left, true, 0)
	assert.False(t, s.Held(session.Left))
}

func TestHoldRepeat(t *testing.T) {
	t.Run("press acts immediately then repeats", func(t *testing.T) {
		s, _, _ := newSession(t, board.O)

		s.Hold(session.Left, true, 0)
		assert.Equal(t, 3, s.Active().Origin().Col)
		s.Repeat(50)
		assert.Equal(t, 3, s.Active().Origin().Col)
		s.Repeat(100)
		assert.Equal(t, 2, s.Active().Origin().Col)
		s.Repeat(150)
		s.Repeat(200)
		assert.Equal(t, 1, s.Active().Origin().Col)

		s.Hold(session.Left, false, 210)
		s.Repeat(400)
		assert.Equal(t, 1, s.Active().Origin().Col)
	})

	t.Run("last pressed horizontal wins", func(t *testing.T) {
		s, _, _ := newSession(t, board.O)

		s.Hold(session.Left, true, 0)
		s.Hold(session.Right, true, 10)
		assert.Equal(t, 4, s.Active().Origin().Col)
		s.Repeat(110)
		assert.Equal(t, 5, s.Active().Origin().Col)

		s.Hold(session.Right, false, 120)
		assert.True(t, s.Held(session.Left))
		s.Repeat(220)
		assert.Equal(t, 4, s.Active().Origin().Col)
	})

	t.Run("held soft drop", func(t *testing.T) {
		s, _, _ := newSession(t, board.O)

		s.Hold(session.Down, true, 0)
		assert.Equal(t, 1, s.Active().Origin().Row)
		s.Repeat(100)
		s.Repeat(200)
		assert.Equal(t, 3, s.Active().Origin().Row)
		assert.Equal(t, 3, s.Score())

		s.Hold(session.Down, false, 250)
		s.Repeat(300)
		assert.Equal(t, 3, s.Active().Origin().Row)
	})

	t.Run("shift postpones repeats", func(t *testing.T) {
		s, _, _ := newSession(t, board.O)
		s.Hold(session.Right, true, 0)
		s.Shift(1000)
		s.Repeat(500)
		assert.Equal(t, 5, s.Active().Origin().Col)
		s.Repeat(1100)
		assert.Equal(t, 6, s.Active().Origin().Col)
	})
}

func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	s, err := session.New(session.DefaultConfig(), session.Options{
		Source: session.NewRandomSource(rand.New(rand.NewPCG(3, 5))),
	})
	require.NoError(t, err)

	now := int64(0)
	lastScore := 0
	for step := 0; step < 5000 && s.IsActive(); step++ {
		now += 16
		switch rng.IntN(6) {
		case 0:
			s.MoveLeft()
		case 1:
			s.MoveRight()
		case 2:
			s.Rotate()
		case 3:
			s.SoftDrop()
		case 4:
			if rng.IntN(10) == 0 {
				s.HardDrop()
			}
		}
		s.Fall(now)

		require.GreaterOrEqual(t, s.Score(), lastScore)
		lastScore = s.Score()
		require.Equal(t, session.LevelFor(s.Lines()), s.Level())
		require.Equal(t, session.FallIntervalFor(s.Level()), s.FallInterval())

		if active := s.Active(); active != nil {
			require.True(t, active.IsValid(s.Grid()))
		}
	}
}
