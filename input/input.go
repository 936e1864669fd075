// Package input defines the discrete input events a match consumes and the
// key bindings that assign physical keys to players.
package input

import (
	"fmt"
	"strings"
	"sync"
)

// Action is a player command.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	SoftDrop
	HardDrop
	Rotate
	Pause
	Quit
)

// Actions lists every action in declaration order.
var Actions = []Action{MoveLeft, MoveRight, SoftDrop, HardDrop, Rotate, Pause, Quit}

var actionNames = [...]string{
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	SoftDrop:  "soft_drop",
	HardDrop:  "hard_drop",
	Rotate:    "rotate",
	Pause:     "pause",
	Quit:      "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action %q", name)
}

// Repeats reports whether the action is a level action that keeps firing
// while held. Every other action is an edge action that fires once per press.
func (a Action) Repeats() bool {
	return a == MoveLeft || a == MoveRight || a == SoftDrop
}

// Event is a press or release of an action by a player (0-based).
type Event struct {
	Player  int
	Action  Action
	Pressed bool
}

func Press(player int, a Action) Event   { return Event{Player: player, Action: a, Pressed: true} }
func Release(player int, a Action) Event { return Event{Player: player, Action: a} }

// Edge reports whether the event should fire a one-shot action.
func (e Event) Edge() bool {
	return e.Pressed && !e.Action.Repeats()
}

func (e Event) String() string {
	state := "release"
	if e.Pressed {
		state = "press"
	}
	return fmt.Sprintf("p%d %s %s", e.Player+1, e.Action, state)
}

// Source delivers the events that occurred since the previous poll.
type Source interface {
	Poll(now int64) []Event
}

// SourceFunc adapts a function to Source.
type SourceFunc func(now int64) []Event

func (f SourceFunc) Poll(now int64) []Event { return f(now) }

// Nop never reports any input.
var Nop Source = SourceFunc(func(int64) []Event { return nil })

// Queue is a Source fed by Push. It is safe for concurrent use, so a
// producer goroutine can feed a match running on another.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends events to be returned by the next Poll.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Poll drains the queue.
func (q *Queue) Poll(int64) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}
