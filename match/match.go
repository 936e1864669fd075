// Package match runs one or two sessions against a shared clock, applies
// player input, and decides the outcome.
//
// A match is a loop.Scheduler with a fixed pipeline of systems:
//
//	input -> gravity -> countdown -> outcome -> render -> signals
//
// so input is fully applied before gravity, and a lock, clear and respawn are
// always drawn in the same frame.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/session"
)

// DefaultCountdown bounds a two-player match, in milliseconds.
const DefaultCountdown = 120_000

// DefaultCellSize is the cell edge in pixels.
const DefaultCellSize = 30

// ErrPlayers is returned for a player count other than 1 or 2.
var ErrPlayers = errors.New("match: players must be 1 or 2")

// Config describes a match.
type Config struct {
	Players       int
	Width, Height int
	// Countdown limits the match in milliseconds. Zero means no limit.
	Countdown   int64
	RepeatDelay int64
	// Interval is the tick period used by Run.
	Interval time.Duration
	CellSize int
	Margin   int
	Logger   *log.Logger
}

// DefaultConfig returns the standard setup for the given player count.
func DefaultConfig(players int) Config {
	cfg := Config{
		Players:     players,
		Width:       board.StandardWidth,
		Height:      board.StandardHeight,
		RepeatDelay: session.DefaultRepeatDelay,
		Interval:    loop.DefaultInterval,
		CellSize:    DefaultCellSize,
		Margin:      DefaultCellSize,
	}
	if players == 2 {
		cfg.Countdown = DefaultCountdown
	}
	return cfg
}

// Options are the collaborators of a match. Nil values use no-ops, a
// SystemClock, and independent random piece sources.
type Options struct {
	Renderer Renderer
	HUD      HUD
	Audio    Audio
	Clock    loop.Clock
	Input    input.Source
	// Sources builds the piece source for each 0-based player.
	Sources func(player int) session.KindSource
}

type player struct {
	index   int
	session *session.Session
	pending []session.Signal
}

// Match owns the sessions of one game and the timers shared between them.
type Match struct {
	cfg  Config
	opts Options
	log  *log.Logger

	scheduler *loop.Scheduler
	players   []*player

	start       int64
	now         int64
	deadline    int64
	paused      bool
	pausedAt    int64
	pausedTotal int64
	quit        bool
	timeUp      bool
	done        bool
	result      Result
	faults      int
	rounds      int
}

// New validates cfg, creates the sessions, and spawns their first pieces.
func New(cfg Config, opts Options) (*Match, error) {
	if cfg.Players != 1 && cfg.Players != 2 {
		return nil, fmt.Errorf("match: %d players: %w", cfg.Players, ErrPlayers)
	}
	if cfg.Width == 0 {
		cfg.Width = board.StandardWidth
	}
	if cfg.Height == 0 {
		cfg.Height = board.StandardHeight
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultCellSize
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	if cfg.Countdown < 0 {
		cfg.Countdown = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer
	}
	if opts.HUD == nil {
		opts.HUD = NopHUD
	}
	if opts.Audio == nil {
		opts.Audio = NopAudio
	}
	if opts.Clock == nil {
		opts.Clock = loop.NewSystemClock()
	}
	if opts.Input == nil {
		opts.Input = input.Nop
	}

	m := &Match{
		cfg:       cfg,
		opts:      opts,
		log:       cfg.Logger,
		scheduler: loop.NewScheduler(opts.Clock),
	}
	if err := m.reset(); err != nil {
		return nil, err
	}

	m.scheduler.Register(&inputSystem{m})
	m.scheduler.Register(&gravitySystem{m})
	m.scheduler.Register(&countdownSystem{m})
	m.scheduler.Register(&outcomeSystem{m})
	m.scheduler.Register(&renderSystem{m})
	m.scheduler.Register(&signalSystem{m})
	return m, nil
}

// reset builds fresh sessions and clears the match timers.
func (m *Match) reset() error {
	now := m.opts.Clock.NowMillis()
	players := make([]*player, m.cfg.Players)
	for i := range players {
		p := &player{index: i}
		var source session.KindSource
		if m.opts.Sources != nil {
			source = m.opts.Sources(i)
		}
		s, err := session.New(session.Config{
			Width:       m.cfg.Width,
			Height:      m.cfg.Height,
			RepeatDelay: m.cfg.RepeatDelay,
		}, session.Options{
			Source: source,
			Sink:   session.SinkFunc(p.emit),
			Now:    now,
		})
		if err != nil {
			return fmt.Errorf("match: player %d: %w", i+1, err)
		}
		p.session = s
		players[i] = p
	}

	m.players = players
	m.start = now
	m.now = now
	m.deadline = 0
	if m.cfg.Countdown > 0 {
		m.deadline = now + m.cfg.Countdown
	}
	m.paused = false
	m.pausedAt = 0
	m.pausedTotal = 0
	m.quit = false
	m.timeUp = false
	m.done = false
	m.result = Result{}
	m.rounds++

	m.log.Printf("match: round %d started with %d player(s)", m.rounds, len(players))
	return nil
}

func (p *player) emit(s session.Signal) {
	p.pending = append(p.pending, s)
}

// Update runs one tick stamped now and reports whether the match is over.
func (m *Match) Update(now int64) bool {
	if !m.done {
		m.scheduler.Once(now)
	}
	return m.done
}

// Run ticks the match on its clock until it finishes or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (Result, error) {
	if m.done {
		return m.result, nil
	}
	if err := m.scheduler.Run(ctx, m.cfg.Interval); err != nil {
		return m.result, err
	}
	return m.result, nil
}

// Restart discards the current sessions and starts a new round.
func (m *Match) Restart() error {
	if err := m.reset(); err != nil {
		return err
	}
	m.scheduler.Resume()
	return nil
}

// RunSeries plays rounds back to back while again approves the previous
// result. It returns every finished result.
func (m *Match) RunSeries(ctx context.Context, again func(Result) bool) ([]Result, error) {
	var results []Result
	for {
		result, err := m.Run(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if again == nil || !again(result) {
			return results, nil
		}
		if err := m.Restart(); err != nil {
			return results, err
		}
	}
}

// apply handles one input event at time now.
func (m *Match) apply(ev input.Event, now int64) {
	switch ev.Action {
	case input.Pause:
		if ev.Pressed {
			m.togglePause(now)
		}
		return
	case input.Quit:
		if ev.Pressed {
			m.quit = true
		}
		return
	}

	if ev.Player < 0 || ev.Player >= len(m.players) {
		return
	}
	s := m.players[ev.Player].session

	// Releases always reach the session so no direction stays held across a
	// pause.
	if (m.paused || m.done) && ev.Pressed {
		return
	}

	switch ev.Action {
	case input.MoveLeft:
		s.Hold(session.Left, ev.Pressed, now)
	case input.MoveRight:
		s.Hold(session.Right, ev.Pressed, now)
	case input.SoftDrop:
		s.Hold(session.Down, ev.Pressed, now)
	case input.HardDrop:
		if ev.Pressed {
			s.HardDrop()
		}
	case input.Rotate:
		if ev.Pressed {
			s.Rotate()
		}
	}
}

func (m *Match) togglePause(now int64) {
	if m.done {
		return
	}
	if !m.paused {
		m.paused = true
		m.pausedAt = now
		m.log.Printf("match: paused at %dms", m.elapsedAt(now))
		return
	}

	d := now - m.pausedAt
	for _, p := range m.players {
		p.session.Shift(d)
	}
	if m.deadline > 0 {
		m.deadline += d
	}
	m.pausedTotal += d
	m.paused = false
	m.log.Printf("match: resumed after %dms", d)
}

func (m *Match) finish() {
	active := make([]bool, len(m.players))
	scores := make([]int, len(m.players))
	lines := make([]int, len(m.players))
	for i, p := range m.players {
		active[i] = p.session.IsActive()
		scores[i] = p.session.Score()
		lines[i] = p.session.Lines()
	}

	m.result = Result{
		Outcome: Decide(active, scores),
		Scores:  scores,
		Lines:   lines,
		Elapsed: m.elapsedAt(m.now),
		Quit:    m.quit,
		TimeUp:  m.timeUp,
	}
	m.done = true
	m.log.Printf("match: round %d finished: %s scores=%v lines=%v", m.rounds, m.result.Outcome, scores, lines)
}

func (m *Match) elapsedAt(now int64) int64 {
	paused := m.pausedTotal
	if m.paused {
		paused += now - m.pausedAt
	}
	return now - m.start - paused
}

// Elapsed is the play time so far in milliseconds, excluding pauses.
func (m *Match) Elapsed() int64 {
	if m.done {
		return m.result.Elapsed
	}
	return m.elapsedAt(m.now)
}

// Remaining is the countdown time left in milliseconds. ok is false when the
// match has no countdown.
func (m *Match) Remaining() (ms int64, ok bool) {
	if m.deadline == 0 {
		return 0, false
	}
	now := m.now
	if m.paused {
		now = m.pausedAt
	}
	return max(m.deadline-now, 0), true
}

func (m *Match) Paused() bool   { return m.paused }
func (m *Match) Done() bool     { return m.done }
func (m *Match) Result() Result { return m.result }
func (m *Match) Config() Config { return m.cfg }

// Round counts the rounds started, including the current one.
func (m *Match) Round() int { return m.rounds }

// Faults counts collaborator panics recovered so far.
func (m *Match) Faults() int { return m.faults }

// Sessions returns the sessions in player order.
func (m *Match) Sessions() []*session.Session {
	out := make([]*session.Session, len(m.players))
	for i, p := range m.players {
		out[i] = p.session
	}
	return out
}

// Scheduler exposes the tick pipeline so callers can append systems such as
// debug overlays. Appended systems run after the match's own.
func (m *Match) Scheduler() *loop.Scheduler { return m.scheduler }
