package session

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/board"
)

// Signal names a gameplay event for the audio collaborator.
type Signal string

const (
	SignalMove     Signal = "move"
	SignalRotate   Signal = "rotate"
	SignalDrop     Signal = "drop"
	SignalClear    Signal = "clear"
	SignalLevelUp  Signal = "level_up"
	SignalGameOver Signal = "game_over"
)

// Signals lists every signal a session can emit.
var Signals = []Signal{SignalMove, SignalRotate, SignalDrop, SignalClear, SignalLevelUp, SignalGameOver}

// Sink receives signals as they happen. Implementations must not block.
type Sink interface {
	Emit(Signal)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Signal)

func (f SinkFunc) Emit(s Signal) { f(s) }

// Discard drops every signal.
var Discard Sink = SinkFunc(func(Signal) {})

// KindSource draws the kind of the next piece.
type KindSource interface {
	Next() board.Kind
}

// RandomSource draws kinds uniformly and independently. A nil generator uses
// the package-level math/rand/v2 source.
type RandomSource struct {
	rng *rand.Rand
}

func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

func (r *RandomSource) Next() board.Kind {
	if r == nil || r.rng == nil {
		return board.Kinds[rand.IntN(board.KindCount)]
	}
	return board.Kinds[r.rng.IntN(board.KindCount)]
}

// SequenceSource replays a fixed list of kinds, wrapping around at the end.
type SequenceSource struct {
	kinds []board.Kind
	next  int
	drawn int
}

func NewSequenceSource(kinds ...board.Kind) *SequenceSource {
	if len(kinds) == 0 {
		kinds = board.Kinds[:]
	}
	return &SequenceSource{kinds: kinds}
}

func (s *SequenceSource) Next() board.Kind {
	k := s.kinds[s.next]
	s.next = (s.next + 1) % len(s.kinds)
	s.drawn++
	return k
}

// Drawn is the number of kinds handed out so far.
func (s *SequenceSource) Drawn() int { return s.drawn }
