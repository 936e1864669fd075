package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/match"
	"github.com/plus3/blockfall/palette"
)

type cellOp struct {
	x, y, size float32
	c          color.RGBA
}

// canvas records the cells a match renders during a tick and paints the last
// complete frame in Draw. The HUD call ends a frame, so a lock, clear and
// respawn always appear together.
type canvas struct {
	match *match.Match

	building []cellOp
	frame    []cellOp
	status   match.Snapshot
	ready    bool
	muted    func() bool
}

func (c *canvas) DrawCell(row, col int, k board.Kind, originX, originY, cellSize int) {
	c.building = append(c.building, cellOp{
		x:    float32(originX + col*cellSize),
		y:    float32(originY + row*cellSize),
		size: float32(cellSize - 1),
		c:    palette.Kind(k),
	})
}

func (c *canvas) DrawGhost(row, col int, k board.Kind, originX, originY, cellSize int) {
	c.building = append(c.building, cellOp{
		x:    float32(originX + col*cellSize),
		y:    float32(originY + row*cellSize),
		size: float32(cellSize - 1),
		c:    palette.Ghost(k),
	})
}

func (c *canvas) DrawStatus(s match.Snapshot) {
	c.frame, c.building = c.building, c.frame[:0]
	c.status = s
	c.ready = true
}

func (c *canvas) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)
	if !c.ready {
		return
	}

	cfg := c.match.Config()
	cs := cfg.CellSize
	w, h := float32(cfg.Width*cs), float32(cfg.Height*cs)

	for i, p := range c.status.Players {
		x, y := float32(p.OriginX), float32(p.OriginY)
		vector.DrawFilledRect(screen, x, y, w, h, palette.Gridline, false)
		vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 2, palette.Border, false)

		px, py := c.match.PreviewOrigin(i)
		ebitenutil.DebugPrintAt(screen, "NEXT", px, py-18)
		ebitenutil.DebugPrintAt(screen, playerLine(p), p.OriginX, p.OriginY-2*cs+4)
		if !p.Active && !c.status.Done {
			ebitenutil.DebugPrintAt(screen, "TOPPED OUT", p.OriginX+4, p.OriginY+int(h)/2)
		}
	}

	for _, op := range c.frame {
		vector.DrawFilledRect(screen, op.x, op.y, op.size, op.size, op.c, false)
	}

	sw, _ := c.match.ScreenSize()
	info := timerText(c.status)
	if c.muted != nil && c.muted() {
		info += "  [muted]"
	}
	ebitenutil.DebugPrintAt(screen, info, cfg.Margin, cfg.Margin/4)

	switch {
	case c.status.Done && c.status.Result != nil:
		msg := resultMessage(*c.status.Result, len(c.status.Players))
		ebitenutil.DebugPrintAt(screen, msg, sw/2-len(msg)*3, cfg.Margin/4+16)
	case c.status.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", sw/2-18, cfg.Margin/4+16)
	}
}

func playerLine(p match.PlayerSnapshot) string {
	return fmt.Sprintf("P%d  SCORE %d  LEVEL %d  LINES %d", p.Player, p.Score, p.Level, p.Lines)
}

// timerText shows the countdown when there is one, otherwise play time.
func timerText(s match.Snapshot) string {
	if s.Remaining != nil {
		// Round up so the display reads 0:00 only once time is up.
		return "TIME LEFT " + clockText(*s.Remaining+999)
	}
	return "TIME " + clockText(s.Elapsed)
}

func clockText(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func resultMessage(r match.Result, players int) string {
	var msg string
	switch r.Outcome {
	case match.GameOver:
		msg = fmt.Sprintf("GAME OVER  SCORE %d", r.Scores[0])
	case match.Player1Wins, match.Player2Wins:
		msg = fmt.Sprintf("PLAYER %d WINS  %d - %d", r.Outcome.Winner()+1, r.Scores[0], r.Scores[1])
	case match.Tie:
		msg = fmt.Sprintf("TIE  %d - %d", r.Scores[0], r.Scores[1])
	default:
		return ""
	}
	if players > 1 {
		return msg + "   R: play again  ESC: quit"
	}
	return msg + "   R: restart  ESC: quit"
}
