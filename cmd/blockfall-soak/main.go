package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/session"
)

// tickMillis is the simulated frame length.
const tickMillis = 16

func main() {
	matches := flag.Int("matches", 20, "The number of matches to play.")
	players := flag.Int("players", 2, "Players per match (1 or 2).")
	maxTicks := flag.Int("max-ticks", 20000, "Quit a match that is still running after this many ticks.")
	rate := flag.Float64("rate", 0.25, "Probability per tick that a bot presses a key.")
	seed := flag.Uint64("seed", 0, "Random seed for pieces and bots. 0 picks one.")
	verbose := flag.Bool("v", false, "Log match events.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(*seed, *seed))

	cfg := match.DefaultConfig(*players)
	cfg.Logger = log.New(io.Discard, "", 0)
	if *verbose {
		cfg.Logger = log.Default()
	}

	clock := loop.NewManualClock(0)
	bots := newBot(rng, *players, *rate)
	queue := &input.Queue{}
	m, err := match.New(cfg, match.Options{
		Clock: clock,
		Input: input.SourceFunc(func(now int64) []input.Event {
			return append(bots.Poll(now), queue.Poll(now)...)
		}),
		Sources: func(int) session.KindSource {
			return session.NewRandomSource(rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())))
		},
	})
	if err != nil {
		log.Fatalf("Failed to create match: %v", err)
	}

	report := &Report{
		Matches:        *matches,
		Players:        *players,
		MaxTicks:       *maxTicks,
		Rate:           *rate,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		Outcomes:       make(map[match.Outcome]int),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Starting soak run: %d matches, %d player(s), seed %d\n", *matches, *players, *seed)
	startTime := time.Now()

	for i := 0; i < *matches; i++ {
		if i > 0 {
			if err := m.Restart(); err != nil {
				log.Fatalf("Failed to restart match: %v", err)
			}
		}

		ticks := 0
		for !m.Done() {
			if ticks == *maxTicks {
				queue.Push(input.Press(0, input.Quit))
			}
			updateStart := time.Now()
			m.Update(clock.Advance(tickMillis))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			ticks++
		}
		report.Add(m.Result(), m.Sessions(), ticks)
	}

	report.TotalTime = time.Since(startTime)
	report.Presses = bots.presses
	report.Faults = m.Faults()
	report.Scheduler = m.Scheduler().GetStats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
