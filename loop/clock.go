package loop

import (
	"sync/atomic"
	"time"
)

// Clock reports monotonic time in milliseconds.
type Clock interface {
	NowMillis() int64
}

// SystemClock measures wall time since it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock only moves when told to. It is safe for concurrent use.
type ManualClock struct {
	now atomic.Int64
}

func NewManualClock(start int64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) NowMillis() int64 { return c.now.Load() }

// Advance moves the clock forward by d milliseconds and returns the new time.
func (c *ManualClock) Advance(d int64) int64 { return c.now.Add(d) }

func (c *ManualClock) Set(now int64) { c.now.Store(now) }
