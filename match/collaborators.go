package match

import (
	"github.com/plus3/blockfall/board"
)

// Renderer draws one cell-sized square. Row and col are always inside the
// area being drawn: the playfield for board cells, a 4x4 box for the preview.
type Renderer interface {
	DrawCell(row, col int, color board.Kind, originX, originY, cellSize int)
}

// GhostRenderer is implemented by renderers that show where the active piece
// would land.
type GhostRenderer interface {
	DrawGhost(row, col int, color board.Kind, originX, originY, cellSize int)
}

// HUD draws the textual status of the match once per rendered frame.
type HUD interface {
	DrawStatus(status Snapshot)
}

// Audio plays a named gameplay event. It must not block.
type Audio interface {
	PlayEvent(name string)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(row, col int, color board.Kind, originX, originY, cellSize int)

func (f RendererFunc) DrawCell(row, col int, color board.Kind, originX, originY, cellSize int) {
	f(row, col, color, originX, originY, cellSize)
}

// AudioFunc adapts a function to Audio.
type AudioFunc func(name string)

func (f AudioFunc) PlayEvent(name string) { f(name) }

type nopRenderer struct{}

func (nopRenderer) DrawCell(int, int, board.Kind, int, int, int) {}

type nopHUD struct{}

func (nopHUD) DrawStatus(Snapshot) {}

type nopAudio struct{}

func (nopAudio) PlayEvent(string) {}

var (
	NopRenderer Renderer = nopRenderer{}
	NopHUD      HUD      = nopHUD{}
	NopAudio    Audio    = nopAudio{}
)

// guard runs fn, recovering and logging a collaborator panic so that it
// cannot end the match.
func (m *Match) guard(collaborator string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.faults++
			m.log.Printf("match: %s fault recovered: %v", collaborator, r)
		}
	}()
	fn()
}
