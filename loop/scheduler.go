package loop

import (
	"context"
	"reflect"
	"time"
)

// DefaultInterval is the 60 Hz tick period.
const DefaultInterval = time.Second / 60

// Stats provides statistics about scheduler execution.
type Stats struct {
	SystemCount     int
	Ticks           uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes systems in registration order, once per tick.
type Scheduler struct {
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal

	tick    uint64
	lastNow int64
	halted  bool
}

// NewScheduler creates a scheduler that reads time from clock when driven
// by Run. A nil clock uses a SystemClock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Scheduler{
		clock:   clock,
		systems: make([]System, 0),
	}
}

// Register adds a system, naming it after its type.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	s.RegisterNamed(systemType.Name(), system)
}

// RegisterNamed adds a system under an explicit name, for function systems.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered systems for a tick stamped now, then flushes
// the frame's commands.
func (s *Scheduler) Once(now int64) {
	var delta int64
	if s.tick > 0 {
		delta = now - s.lastNow
	}
	s.tick++
	s.lastNow = now
	frame := newFrame(s.tick, now, delta)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	if frame.Commands.Flush() {
		s.halted = true
	}
}

// Run ticks at the given interval until a system halts the scheduler or the
// context is cancelled. It returns the context error in the latter case.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !s.halted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Once(s.clock.NowMillis())
		}
	}
	return nil
}

// Halted reports whether a system requested a halt.
func (s *Scheduler) Halted() bool { return s.halted }

// Resume clears a previous halt so Run can be called again.
func (s *Scheduler) Resume() { s.halted = false }

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *Stats {
	stats := &Stats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
