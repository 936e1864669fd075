package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/session"
)

type Report struct {
	// Configuration
	Matches  int
	Players  int
	MaxTicks int
	Rate     float64
	Seed     uint64

	// Results
	Played    int
	Ticks     int
	Quits     int
	TimeUps   int
	Outcomes  map[match.Outcome]int
	BestScore int
	Scores    int
	Lines     int
	Pieces    int
	HardDrops int
	Tetrises  int
	Presses   int
	Faults    int

	TotalTime      time.Duration
	UpdateTime     Stats
	Scheduler      *loop.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Add records one finished match.
func (r *Report) Add(result match.Result, sessions []*session.Session, ticks int) {
	r.Played++
	r.Ticks += ticks
	r.Outcomes[result.Outcome]++
	if result.Quit {
		r.Quits++
	}
	if result.TimeUp {
		r.TimeUps++
	}
	for _, score := range result.Scores {
		r.Scores += score
		r.BestScore = max(r.BestScore, score)
	}
	for _, s := range sessions {
		stats := s.Stats()
		r.Lines += s.Lines()
		r.Pieces += stats.PiecesLocked
		r.HardDrops += stats.HardDrops
		r.Tetrises += stats.Clears[3]
	}
}

// SimulatedTime is the game time covered by every tick played.
func (r *Report) SimulatedTime() time.Duration {
	return time.Duration(r.Ticks) * tickMillis * time.Millisecond
}

// AvgScore is the mean score per player per match.
func (r *Report) AvgScore() float64 {
	n := r.Played * r.Players
	if n == 0 {
		return 0
	}
	return float64(r.Scores) / float64(n)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Run Configuration
- **Matches:** {{.Matches}}
- **Players:** {{.Players}}
- **Max Ticks per Match:** {{.MaxTicks}}
- **Press Rate:** {{printf "%.2f" .Rate}}
- **Seed:** {{.Seed}}

## Matches
- **Played:** {{.Played}}
- **Ticks:** {{.Ticks}} ({{.SimulatedTime}} simulated)
- **Outcomes:**{{range $outcome, $count := .Outcomes}}
  - {{$outcome}}: {{$count}}{{end}}
- **Quit at Tick Limit:** {{.Quits}}
- **Time Up:** {{.TimeUps}}
- **Collaborator Faults:** {{.Faults}}

## Play
- **Best Score:** {{.BestScore}}
- **Average Score:** {{printf "%.1f" .AvgScore}}
- **Lines Cleared:** {{.Lines}}
- **Tetrises:** {{.Tetrises}}
- **Pieces Locked:** {{.Pieces}}
- **Hard Drops:** {{.HardDrops}}
- **Bot Presses:** {{.Presses}}

## Performance Results
- **Total Run Time:** {{.TotalTime}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems (last match)
| System | Executions | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	return tmpl.Execute(w, r)
}
