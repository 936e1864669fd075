package match

import (
	"github.com/plus3/blockfall/board"
)

const (
	// PreviewSize is the edge, in cells, of the next-piece box.
	PreviewSize = 4

	hudRows       = 2
	previewGutter = PreviewSize + 2
)

func (m *Match) stride() int {
	return (m.cfg.Width+previewGutter)*m.cfg.CellSize + m.cfg.Margin
}

// BoardOrigin is the pixel position of the top-left cell of a player's
// playfield.
func (m *Match) BoardOrigin(player int) (x, y int) {
	return m.cfg.Margin + player*m.stride(), m.cfg.Margin + hudRows*m.cfg.CellSize
}

// PreviewOrigin is the pixel position of a player's next-piece box, one cell
// right of the playfield.
func (m *Match) PreviewOrigin(player int) (x, y int) {
	x, y = m.BoardOrigin(player)
	cs := m.cfg.CellSize
	return x + (m.cfg.Width+1)*cs, y + cs
}

// ScreenSize is the pixel area needed to draw every player.
func (m *Match) ScreenSize() (w, h int) {
	return m.cfg.Margin + m.cfg.Players*m.stride(),
		2*m.cfg.Margin + (m.cfg.Height+hudRows)*m.cfg.CellSize
}

// Render draws every playfield through the renderer, then the status through
// the HUD. It is part of each tick and may also be called between ticks.
func (m *Match) Render() {
	m.guard("renderer", func() {
		for _, p := range m.players {
			m.drawPlayer(p)
		}
	})
	m.guard("hud", func() {
		m.opts.HUD.DrawStatus(m.snapshot(false))
	})
}

func (m *Match) drawPlayer(p *player) {
	r := m.opts.Renderer
	cs := m.cfg.CellSize
	g := p.session.Grid()
	ox, oy := m.BoardOrigin(p.index)

	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			r.DrawCell(row, col, g.At(row, col), ox, oy, cs)
		}
	}

	if active := p.session.Active(); active != nil {
		if ghost, ok := r.(GhostRenderer); ok {
			d := active.DropDistance(g)
			for _, c := range active.Cells() {
				c.Row += d
				if g.Contains(c.Row, c.Col) {
					ghost.DrawGhost(c.Row, c.Col, active.Kind(), ox, oy, cs)
				}
			}
		}
		for _, c := range active.Cells() {
			if g.Contains(c.Row, c.Col) {
				r.DrawCell(c.Row, c.Col, active.Kind(), ox, oy, cs)
			}
		}
	}

	if next := p.session.Preview(); next != nil {
		px, py := m.PreviewOrigin(p.index)
		for _, c := range board.Shape(next.Kind(), 0) {
			r.DrawCell(c.Row, c.Col, next.Kind(), px, py, cs)
		}
	}
}
