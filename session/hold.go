package session

// Direction is a held, repeating input.
type Direction int

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return "unknown"
}

// holdState tracks held directions. The most recently pressed horizontal
// direction wins while both are held.
type holdState struct {
	left, right, down bool
	horizontal        int
	nextMove          int64
	nextDrop          int64
}

// Hold records a press or release of a repeating direction. A press acts
// immediately and schedules the first repeat one repeat delay later.
func (s *Session) Hold(dir Direction, pressed bool, now int64) {
	if !s.alive {
		return
	}
	h := &s.held
	switch dir {
	case Left, Right:
		step := -1
		if dir == Right {
			step = 1
		}
		if dir == Left {
			h.left = pressed
		} else {
			h.right = pressed
		}
		if pressed {
			h.horizontal = step
			h.nextMove = now + s.repeatDelay
			s.shift(step)
			return
		}
		if h.horizontal != step {
			return
		}
		// Fall back to the other direction if it is still held.
		switch {
		case h.left:
			h.horizontal = -1
		case h.right:
			h.horizontal = 1
		default:
			h.horizontal = 0
		}
		h.nextMove = now + s.repeatDelay
	case Down:
		h.down = pressed
		if pressed {
			h.nextDrop = now + s.repeatDelay
			s.SoftDrop()
		}
	}
}

// Held reports whether a direction is currently held.
func (s *Session) Held(dir Direction) bool {
	switch dir {
	case Left:
		return s.held.left
	case Right:
		return s.held.right
	case Down:
		return s.held.down
	}
	return false
}

// Repeat fires held directions whose repeat delay has elapsed.
func (s *Session) Repeat(now int64) {
	h := &s.held
	if h.horizontal != 0 && now >= h.nextMove {
		h.nextMove = now + s.repeatDelay
		s.shift(h.horizontal)
	}
	if h.down && now >= h.nextDrop {
		h.nextDrop = now + s.repeatDelay
		s.SoftDrop()
	}
}
