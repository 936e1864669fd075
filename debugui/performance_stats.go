package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/loop"
)

// PerformanceStats plots frame times and tabulates per-system durations.
type PerformanceStats struct {
	frames  *History
	systems map[string]*History
	size    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		frames:  NewHistory(historyFrames),
		systems: make(map[string]*History),
		size:    historyFrames,
	}
}

// Record adds one frame worth of samples.
func (ps *PerformanceStats) Record(stats *loop.Stats, deltaTime float32) {
	ps.frames.Push(deltaTime * 1000.0)
	for _, s := range stats.Systems {
		h, ok := ps.systems[s.Name]
		if !ok {
			h = NewHistory(ps.size)
			ps.systems[s.Name] = h
		}
		h.Push(float32(s.LastDuration) / float32(time.Microsecond))
	}
}

func (ps *PerformanceStats) Render(stats *loop.Stats, deltaTime float32) {
	ps.Record(stats, deltaTime)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	avgFrameTime := ps.frames.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.frames.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Graphs (us)") {
		for _, s := range stats.Systems {
			h := ps.systems[s.Name]
			samples := h.Samples()
			imgui.Text(fmt.Sprintf("%s  peak %.1f", s.Name, h.Max()))
			imgui.PlotLinesFloatPtr("##"+s.Name, &samples[0], int32(len(samples)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
