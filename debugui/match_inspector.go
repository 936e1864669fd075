package debugui

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/palette"
)

// Mixer is the audio control surface shown by the inspector.
type Mixer interface {
	Volume() float64
	SetVolume(float64)
	Muted() bool
	SetMuted(bool)
}

// MatchInspector shows live match state: timers, per-player counters and a
// miniature of every playfield.
type MatchInspector struct {
	match *match.Match
	// Input receives events from the inspector's buttons.
	Input *input.Queue
	// Mixer is optional.
	Mixer Mixer
	// OnRestart is called by the Restart button once the match is over.
	OnRestart func()

	cellSize  float32
	showGrids bool
}

func NewMatchInspector(m *match.Match) *MatchInspector {
	return &MatchInspector{
		match:     m,
		cellSize:  8,
		showGrids: true,
	}
}

func (mi *MatchInspector) Render() {
	if !imgui.BeginV("Match", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := mi.match.Snapshot()
	imgui.Text(fmt.Sprintf("Round %d  tick %d", snap.Round, mi.match.Scheduler().GetStats().Ticks))
	imgui.Text(fmt.Sprintf("Elapsed: %s", formatMillis(snap.Elapsed)))
	if snap.Remaining != nil {
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("Remaining: %s", formatMillis(*snap.Remaining)))
	}
	if snap.Faults > 0 {
		imgui.Text(fmt.Sprintf("Collaborator faults: %d", snap.Faults))
	}

	switch {
	case snap.Done:
		imgui.Text(fmt.Sprintf("Finished: %s", snap.Result.Outcome))
		if mi.OnRestart != nil {
			imgui.SameLine()
			if imgui.Button("Restart") {
				mi.OnRestart()
			}
		}
	case mi.Input != nil:
		label := "Pause"
		if snap.Paused {
			label = "Resume"
		}
		if imgui.Button(label) {
			mi.Input.Push(input.Press(0, input.Pause))
		}
		imgui.SameLine()
		if imgui.Button("Quit") {
			mi.Input.Push(input.Press(0, input.Quit))
		}
	}

	if mi.Mixer != nil {
		imgui.Separator()
		muted := mi.Mixer.Muted()
		if imgui.Checkbox("Mute", &muted) {
			mi.Mixer.SetMuted(muted)
		}
		volume := float32(mi.Mixer.Volume())
		imgui.SetNextItemWidth(150)
		if imgui.SliderFloat("Volume", &volume, 0, 1) {
			mi.Mixer.SetVolume(float64(volume))
		}
	}

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("PlayerTable", len32(snap.Players)+1, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("")
		for _, p := range snap.Players {
			imgui.TableSetupColumn(fmt.Sprintf("Player %d", p.Player))
		}
		imgui.TableHeadersRow()

		row := func(label string, value func(p match.PlayerSnapshot) string) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(label)
			for _, p := range snap.Players {
				imgui.TableNextColumn()
				imgui.Text(value(p))
			}
		}
		row("Phase", func(p match.PlayerSnapshot) string { return p.Phase })
		row("Score", func(p match.PlayerSnapshot) string { return fmt.Sprint(p.Score) })
		row("Level", func(p match.PlayerSnapshot) string { return fmt.Sprint(p.Level) })
		row("Lines", func(p match.PlayerSnapshot) string { return fmt.Sprint(p.Lines) })
		row("Fall", func(p match.PlayerSnapshot) string { return fmt.Sprintf("%d ms", p.FallInterval) })
		row("Piece", func(p match.PlayerSnapshot) string {
			if p.Piece == nil {
				return "-"
			}
			return fmt.Sprintf("%s r%d (%d,%d)", p.Piece.Kind, p.Piece.Rotation, p.Piece.Row, p.Piece.Col)
		})
		row("Next", func(p match.PlayerSnapshot) string { return p.Next })
		row("Locked", func(p match.PlayerSnapshot) string { return fmt.Sprint(p.Stats.PiecesLocked) })
		row("Clears", func(p match.PlayerSnapshot) string { return fmt.Sprint(p.Stats.Clears) })

		imgui.EndTable()
	}

	imgui.Checkbox("Show grids", &mi.showGrids)
	if mi.showGrids {
		for i, s := range mi.match.Sessions() {
			if i > 0 {
				imgui.SameLine()
			}
			mi.drawGrid(s.Grid(), s.Active())
		}
	}

	imgui.End()
}

// drawGrid paints a miniature playfield at the cursor and reserves its space.
func (mi *MatchInspector) drawGrid(g *board.Grid, active *board.Piece) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	cs := mi.cellSize
	w, h := float32(g.Width())*cs, float32(g.Height())*cs

	drawList.AddRectFilled(origin, imgui.NewVec2(origin.X+w, origin.Y+h), colorU32(palette.Kind(board.Empty)))

	cell := func(row, col int, k board.Kind) {
		lo := imgui.NewVec2(origin.X+float32(col)*cs, origin.Y+float32(row)*cs)
		hi := imgui.NewVec2(lo.X+cs-1, lo.Y+cs-1)
		drawList.AddRectFilled(lo, hi, colorU32(palette.Kind(k)))
	}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if k := g.At(row, col); k != board.Empty {
				cell(row, col, k)
			}
		}
	}
	if active != nil {
		for _, c := range active.Cells() {
			if g.Contains(c.Row, c.Col) {
				cell(c.Row, c.Col, active.Kind())
			}
		}
	}

	imgui.Dummy(imgui.NewVec2(w, h))
}

func colorU32(c color.RGBA) uint32 {
	return imgui.ColorU32Vec4(imgui.NewVec4(palette.Float(c)))
}

func len32[T any](s []T) int32 { return int32(len(s)) }

// formatMillis renders a millisecond count as m:ss.
func formatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
