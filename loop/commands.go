package loop

// Commands buffers work that must happen after every system of the tick has
// run, such as delivering side effects to collaborators.
type Commands struct {
	defers []func()
	halt   bool
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the tick's commands are flushed. Deferred
// functions run in the order they were queued.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Halt asks the scheduler to stop running after this tick.
func (c *Commands) Halt() {
	c.halt = true
}

// Pending is the number of queued deferred functions.
func (c *Commands) Pending() int {
	return len(c.defers)
}

// Flush runs the deferred functions and resets the buffer. It reports whether
// a halt was requested.
func (c *Commands) Flush() bool {
	for _, fn := range c.defers {
		fn()
	}
	halt := c.halt
	c.defers = c.defers[:0]
	c.halt = false
	return halt
}
