package main

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/input"
)

// moves are the actions a bot may press. Bots never pause or quit.
var moves = []input.Action{input.MoveLeft, input.MoveRight, input.SoftDrop, input.Rotate, input.HardDrop}

// bot presses a random move for each player with probability rate per tick
// and releases it on the next tick.
type bot struct {
	rng     *rand.Rand
	rate    float64
	held    []input.Action
	holding []bool
	presses int
}

func newBot(rng *rand.Rand, players int, rate float64) *bot {
	return &bot{
		rng:     rng,
		rate:    rate,
		held:    make([]input.Action, players),
		holding: make([]bool, players),
	}
}

func (b *bot) Poll(int64) []input.Event {
	var events []input.Event
	for p := range b.held {
		if b.holding[p] {
			events = append(events, input.Release(p, b.held[p]))
			b.holding[p] = false
			continue
		}
		if b.rng.Float64() >= b.rate {
			continue
		}
		a := moves[b.rng.IntN(len(moves))]
		events = append(events, input.Press(p, a))
		b.held[p] = a
		b.holding[p] = true
		b.presses++
	}
	return events
}
