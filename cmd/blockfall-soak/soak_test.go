package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/session"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestBotReleasesWhatItPressed(t *testing.T) {
	b := newBot(rand.New(rand.NewPCG(1, 2)), 2, 1)

	pressed := b.Poll(0)
	require.Len(t, pressed, 2)
	for p, ev := range pressed {
		assert.Equal(t, p, ev.Player)
		assert.True(t, ev.Pressed)
		assert.NotEqual(t, input.Pause, ev.Action)
		assert.NotEqual(t, input.Quit, ev.Action)
	}

	released := b.Poll(16)
	require.Len(t, released, 2)
	for p, ev := range released {
		assert.Equal(t, input.Release(p, pressed[p].Action), ev)
	}
	assert.Equal(t, 2, b.presses)

	idle := newBot(rand.New(rand.NewPCG(1, 2)), 1, 0)
	assert.Empty(t, idle.Poll(0))
}

func TestReport(t *testing.T) {
	clock := loop.NewManualClock(0)
	queue := &input.Queue{}
	m, err := match.New(match.DefaultConfig(1), match.Options{
		Clock:   clock,
		Input:   queue,
		Sources: func(int) session.KindSource { return session.NewSequenceSource(board.O) },
	})
	require.NoError(t, err)

	for !m.Done() {
		queue.Push(input.Press(0, input.HardDrop), input.Release(0, input.HardDrop))
		m.Update(clock.Advance(tickMillis))
	}

	report := &Report{
		Matches:  1,
		Players:  1,
		MaxTicks: 100,
		Outcomes: make(map[match.Outcome]int),
	}
	report.Add(m.Result(), m.Sessions(), 10)
	report.Scheduler = m.Scheduler().GetStats()
	report.UpdateTime = Stats{Samples: []time.Duration{time.Millisecond}}
	report.UpdateTime.Finalize()

	assert.Equal(t, 1, report.Outcomes[match.GameOver])
	assert.Equal(t, 10, report.Pieces)
	assert.Equal(t, 180, report.BestScore)
	assert.Equal(t, 160*time.Millisecond, report.SimulatedTime())
	assert.InDelta(t, 180.0, report.AvgScore(), 0.001)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "- game_over: 1")
	assert.Contains(t, out, "**Best Score:** 180")
	assert.Contains(t, out, "| gravitySystem |")
	assert.NotContains(t, out, "GC Pause")
}
