// Package loop runs game systems at a fixed tick rate. Each tick executes the
// registered systems in order against a shared Frame, then flushes the
// frame's deferred commands.
package loop

// System is one stage of a tick. Systems hold their own state between ticks.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }

// Frame is the per-tick context handed to every system.
type Frame struct {
	// Tick counts executed ticks, starting at 1.
	Tick uint64
	// Now is the tick timestamp in milliseconds.
	Now int64
	// Delta is the time since the previous tick in milliseconds.
	Delta    int64
	Commands *Commands
}

func newFrame(tick uint64, now, delta int64) *Frame {
	return &Frame{
		Tick:     tick,
		Now:      now,
		Delta:    delta,
		Commands: newCommands(),
	}
}
