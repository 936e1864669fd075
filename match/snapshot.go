package match

import (
	"strings"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/session"
)

// Snapshot is a read-only copy of a match's state, safe to hand to another
// goroutine or encode as JSON.
type Snapshot struct {
	Round     int              `json:"round"`
	Paused    bool             `json:"paused"`
	Done      bool             `json:"done"`
	Elapsed   int64            `json:"elapsed_ms"`
	Remaining *int64           `json:"remaining_ms,omitempty"`
	Players   []PlayerSnapshot `json:"players"`
	Result    *Result          `json:"result,omitempty"`
	Faults    int              `json:"faults"`
}

// PlayerSnapshot is one session's state. Player is 1-based.
type PlayerSnapshot struct {
	Player       int           `json:"player"`
	Active       bool          `json:"active"`
	Phase        string        `json:"phase"`
	Score        int           `json:"score"`
	Level        int           `json:"level"`
	Lines        int           `json:"lines"`
	FallInterval int64         `json:"fall_interval_ms"`
	Piece        *PieceInfo    `json:"piece,omitempty"`
	Next         string        `json:"next"`
	Stats        session.Stats `json:"stats"`
	// Rows renders the locked grid one string per row, '.' for empty cells.
	Rows []string `json:"rows,omitempty"`

	OriginX int `json:"-"`
	OriginY int `json:"-"`
}

// PieceInfo describes the falling piece.
type PieceInfo struct {
	Kind     string `json:"kind"`
	Rotation int    `json:"rotation"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

// Snapshot captures the current state including every grid.
func (m *Match) Snapshot() Snapshot {
	return m.snapshot(true)
}

func (m *Match) snapshot(withRows bool) Snapshot {
	snap := Snapshot{
		Round:   m.rounds,
		Paused:  m.paused,
		Done:    m.done,
		Elapsed: m.Elapsed(),
		Players: make([]PlayerSnapshot, len(m.players)),
		Faults:  m.faults,
	}
	if remaining, ok := m.Remaining(); ok {
		snap.Remaining = &remaining
	}
	if m.done {
		result := m.result
		snap.Result = &result
	}

	for i, p := range m.players {
		s := p.session
		ps := PlayerSnapshot{
			Player:       i + 1,
			Active:       s.IsActive(),
			Phase:        s.Phase().String(),
			Score:        s.Score(),
			Level:        s.Level(),
			Lines:        s.Lines(),
			FallInterval: s.FallInterval(),
			Stats:        s.Stats(),
		}
		ps.OriginX, ps.OriginY = m.BoardOrigin(i)
		if next := s.Preview(); next != nil {
			ps.Next = next.Kind().String()
		}
		if a := s.Active(); a != nil {
			ps.Piece = &PieceInfo{
				Kind:     a.Kind().String(),
				Rotation: a.Rotation(),
				Row:      a.Origin().Row,
				Col:      a.Origin().Col,
			}
		}
		if withRows {
			ps.Rows = encodeRows(s.Grid())
		}
		snap.Players[i] = ps
	}
	return snap
}

func encodeRows(g *board.Grid) []string {
	rows := g.Rows()
	out := make([]string, len(rows))
	var sb strings.Builder
	for i, row := range rows {
		sb.Reset()
		for _, k := range row {
			if k == board.Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(k.String())
		}
		out[i] = sb.String()
	}
	return out
}
