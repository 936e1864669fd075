// Package session implements one player's playfield: the spawn, fall, lock,
// clear cycle, scoring and leveling, and held-input repeat timing.
//
// All timing is driven by millisecond timestamps passed in by the caller, so a
// Session never reads a clock itself.
package session

import (
	"fmt"

	"github.com/plus3/blockfall/board"
)

// DefaultRepeatDelay is the interval between repeats of a held move or soft
// drop, in milliseconds.
const DefaultRepeatDelay = 100

// Phase is the conceptual state of the session's piece cycle.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseCleared
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseCleared:
		return "cleared"
	case PhaseGameOver:
		return "game_over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Config sizes a session.
type Config struct {
	Width, Height int
	// RepeatDelay is the held-input repeat interval in milliseconds.
	RepeatDelay int64
}

// DefaultConfig is the standard 10x20 playfield.
func DefaultConfig() Config {
	return Config{
		Width:       board.StandardWidth,
		Height:      board.StandardHeight,
		RepeatDelay: DefaultRepeatDelay,
	}
}

// Options carries the collaborators of a session.
type Options struct {
	// Source draws piece kinds. Defaults to a RandomSource.
	Source KindSource
	// Sink receives signals. Defaults to Discard.
	Sink Sink
	// Now is the creation timestamp in milliseconds; the first gravity step
	// happens one fall interval later.
	Now int64
}

// Stats are per-session counters beyond score and lines.
type Stats struct {
	PiecesLocked  int `json:"pieces_locked"`
	HardDrops     int `json:"hard_drops"`
	SoftDropCells int `json:"soft_drop_cells"`
	// Clears counts clears by size: Clears[0] singles through Clears[3] tetrises.
	Clears [4]int `json:"clears"`
}

// Session is one player's game.
type Session struct {
	grid    *board.Grid
	active  *board.Piece
	preview *board.Piece

	score int
	level int
	lines int

	fallInterval int64
	lastFall     int64
	repeatDelay  int64

	alive bool
	phase Phase
	held  holdState
	stats Stats

	source KindSource
	sink   Sink
}

// New creates a session with its first piece already spawned.
func New(cfg Config, opts Options) (*Session, error) {
	grid, err := board.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if cfg.RepeatDelay <= 0 {
		cfg.RepeatDelay = DefaultRepeatDelay
	}
	if opts.Source == nil {
		opts.Source = NewRandomSource(nil)
	}
	if opts.Sink == nil {
		opts.Sink = Discard
	}

	s := &Session{
		grid:         grid,
		level:        1,
		fallInterval: FallIntervalFor(1),
		lastFall:     opts.Now,
		repeatDelay:  cfg.RepeatDelay,
		alive:        true,
		source:       opts.Source,
		sink:         opts.Sink,
	}
	s.preview = board.NewPiece(s.source.Next())
	s.spawn()
	return s, nil
}

func (s *Session) Grid() *board.Grid { return s.grid }

// Active returns the falling piece, or nil once the game is over.
func (s *Session) Active() *board.Piece { return s.active }

// Preview returns the piece that spawns next.
func (s *Session) Preview() *board.Piece { return s.preview }

func (s *Session) Score() int   { return s.score }
func (s *Session) Level() int   { return s.level }
func (s *Session) Lines() int   { return s.lines }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Stats() Stats { return s.stats }

// FallInterval is the current gravity interval in milliseconds.
func (s *Session) FallInterval() int64 { return s.fallInterval }

// IsActive reports whether the session is still playing.
func (s *Session) IsActive() bool { return s.alive }

// falling reports whether player input may act on the active piece.
func (s *Session) falling() bool {
	return s.alive && s.active != nil && s.phase == PhaseFalling
}

// spawn promotes the preview piece and draws a new one. A spawn that collides
// ends the game.
func (s *Session) spawn() {
	s.phase = PhaseSpawning
	s.active = s.preview
	s.preview = board.NewPiece(s.source.Next())
	s.active.MoveTo(0, s.grid.Width()/2-s.active.Width()/2)

	if !s.active.IsValid(s.grid) {
		s.alive = false
		s.active = nil
		s.phase = PhaseGameOver
		s.held = holdState{}
		s.sink.Emit(SignalGameOver)
		return
	}
	s.phase = PhaseFalling
}

// lock commits the active piece, clears rows, updates counters and spawns
// the next piece. It always runs to completion.
func (s *Session) lock() {
	s.phase = PhaseLocking
	s.grid.Place(s.active)
	s.stats.PiecesLocked++
	s.sink.Emit(SignalDrop)

	s.phase = PhaseCleared
	if n := s.grid.ClearFullRows(); n > 0 {
		if n <= len(s.stats.Clears) {
			s.stats.Clears[n-1]++
		}
		s.lines += n
		s.score += ScoreForClear(n, s.level)
		s.sink.Emit(SignalClear)

		if level := LevelFor(s.lines); level != s.level {
			if level > s.level {
				s.sink.Emit(SignalLevelUp)
			}
			s.level = level
			s.fallInterval = FallIntervalFor(level)
		}
	}

	s.spawn()
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool { return s.shift(-1) }

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool { return s.shift(1) }

func (s *Session) shift(dCol int) bool {
	if !s.falling() || !s.active.TryMove(0, dCol, s.grid) {
		return false
	}
	s.sink.Emit(SignalMove)
	return true
}

// Rotate turns the active piece to its next orientation.
func (s *Session) Rotate() bool {
	if !s.falling() || !s.active.TryRotate(s.grid) {
		return false
	}
	s.sink.Emit(SignalRotate)
	return true
}

// SoftDrop moves the piece down one row, awarding SoftDropPoints. When the
// piece cannot move it locks, exactly as a gravity step would.
func (s *Session) SoftDrop() bool {
	if !s.falling() {
		return false
	}
	if !s.active.TryMove(1, 0, s.grid) {
		s.lock()
		return false
	}
	s.score += SoftDropPoints
	s.stats.SoftDropCells++
	return true
}

// HardDrop drops the piece as far as it goes, awarding HardDropPoints per
// row, and locks it. It returns the number of rows descended.
func (s *Session) HardDrop() int {
	if !s.falling() {
		return 0
	}
	n := 0
	for s.active.TryMove(1, 0, s.grid) {
		n++
	}
	s.score += n * HardDropPoints
	s.stats.HardDrops++
	s.lock()
	return n
}

// Fall applies gravity: once a full fall interval has passed since the last
// step, the piece moves down one row or locks. It reports whether a gravity
// step was taken.
func (s *Session) Fall(now int64) bool {
	if !s.falling() || now-s.lastFall < s.fallInterval {
		return false
	}
	s.lastFall = now
	if !s.active.TryMove(1, 0, s.grid) {
		s.lock()
	}
	return true
}

// Shift moves every timer forward by d milliseconds, so time spent paused is
// not counted toward gravity or input repeats.
func (s *Session) Shift(d int64) {
	s.lastFall += d
	s.held.nextMove += d
	s.held.nextDrop += d
}
