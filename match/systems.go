package match

import (
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/session"
)

// inputSystem polls the input source, then fires held repeats.
type inputSystem struct{ m *Match }

func (s *inputSystem) Execute(f *loop.Frame) {
	m := s.m
	m.now = f.Now
	for _, ev := range m.opts.Input.Poll(f.Now) {
		m.apply(ev, f.Now)
	}
	if m.paused || m.done {
		return
	}
	for _, p := range m.players {
		p.session.Repeat(f.Now)
	}
}

// gravitySystem steps every session against its own fall timer.
type gravitySystem struct{ m *Match }

func (s *gravitySystem) Execute(f *loop.Frame) {
	if s.m.paused || s.m.done {
		return
	}
	for _, p := range s.m.players {
		p.session.Fall(f.Now)
	}
}

type countdownSystem struct{ m *Match }

func (s *countdownSystem) Execute(f *loop.Frame) {
	m := s.m
	if m.paused || m.done || m.deadline == 0 {
		return
	}
	if f.Now >= m.deadline {
		m.timeUp = true
	}
}

// outcomeSystem ends the match on quit, time up, or when no session is
// still playing.
type outcomeSystem struct{ m *Match }

func (s *outcomeSystem) Execute(f *loop.Frame) {
	m := s.m
	if !m.done && (m.quit || m.timeUp || !m.anyActive()) {
		m.finish()
	}
	if m.done {
		f.Commands.Halt()
	}
}

func (m *Match) anyActive() bool {
	for _, p := range m.players {
		if p.session.IsActive() {
			return true
		}
	}
	return false
}

type renderSystem struct{ m *Match }

func (s *renderSystem) Execute(*loop.Frame) {
	s.m.Render()
}

// signalSystem hands the tick's session signals to the audio collaborator
// once the tick is complete.
type signalSystem struct{ m *Match }

func (s *signalSystem) Execute(f *loop.Frame) {
	m := s.m
	var signals []session.Signal
	for _, p := range m.players {
		for _, sig := range p.pending {
			switch sig {
			case session.SignalLevelUp:
				m.log.Printf("match: player %d reached level %d", p.index+1, p.session.Level())
			case session.SignalGameOver:
				m.log.Printf("match: player %d topped out with %d points", p.index+1, p.session.Score())
			}
		}
		signals = append(signals, p.pending...)
		p.pending = p.pending[:0]
	}
	if len(signals) == 0 {
		return
	}

	f.Commands.Defer(func() {
		for _, sig := range signals {
			m.guard("audio", func() { m.opts.Audio.PlayEvent(string(sig)) })
		}
	})
}
