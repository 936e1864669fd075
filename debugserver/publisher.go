// Package debugserver exposes a running match over a small read-only HTTP
// API: JSON snapshots, scheduler timings, and a server-sent event stream.
package debugserver

import (
	"sync"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/match"
)

// Publisher holds the latest snapshot of a match for HTTP handlers. The match
// goroutine publishes; handlers read from any goroutine.
type Publisher struct {
	mu        sync.Mutex
	snapshot  match.Snapshot
	stats     loop.Stats
	published bool
	version   uint64
	subs      map[chan uint64]struct{}
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{
		subs: make(map[chan uint64]struct{}),
	}
}

// Publish stores a snapshot and wakes every subscriber.
func (p *Publisher) Publish(snap match.Snapshot, stats *loop.Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot = snap
	if stats != nil {
		p.stats = *stats
	}
	p.published = true
	p.version++
	for ch := range p.subs {
		select {
		case ch <- p.version:
		default:
			// Lagging subscribers pick up the newest snapshot on their next read.
		}
	}
}

// Latest returns the most recent snapshot and whether one was published.
func (p *Publisher) Latest() (match.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.published
}

// Stats returns the scheduler statistics published with the latest snapshot.
func (p *Publisher) Stats() loop.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Version counts publishes.
func (p *Publisher) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Subscribe registers a channel that receives the version of each publish.
func (p *Publisher) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (p *Publisher) Unsubscribe(ch chan uint64) {
	p.mu.Lock()
	if _, ok := p.subs[ch]; ok {
		delete(p.subs, ch)
		close(ch)
	}
	p.mu.Unlock()
}

// System publishes m every `every` ticks, and on the tick the match ends. It
// runs on the match goroutine, so snapshots never race with the game.
func (p *Publisher) System(m *match.Match, every uint64) loop.System {
	if every == 0 {
		every = 1
	}
	return loop.SystemFunc(func(f *loop.Frame) {
		if f.Tick%every == 0 || m.Done() {
			p.Publish(m.Snapshot(), m.Scheduler().GetStats())
		}
	})
}
