package match

import "fmt"

// Outcome is the terminal state of a match.
type Outcome int

const (
	// Undecided means the match is still running.
	Undecided Outcome = iota
	// GameOver ends a single-player match.
	GameOver
	Player1Wins
	Player2Wins
	Tie
)

var outcomeNames = [...]string{
	Undecided:   "undecided",
	GameOver:    "game_over",
	Player1Wins: "player1_wins",
	Player2Wins: "player2_wins",
	Tie:         "tie",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for i, name := range outcomeNames {
		if name == string(text) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("match: unknown outcome %q", text)
}

// Winner is the 0-based winning player, or -1 when nobody won.
func (o Outcome) Winner() int {
	switch o {
	case Player1Wins:
		return 0
	case Player2Wins:
		return 1
	}
	return -1
}

// Result is what a finished match reports to its caller.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Scores  []int   `json:"scores"`
	Lines   []int   `json:"lines"`
	// Elapsed is the play time in milliseconds, excluding pauses.
	Elapsed int64 `json:"elapsed_ms"`
	Quit    bool  `json:"quit,omitempty"`
	TimeUp  bool  `json:"time_up,omitempty"`
}

// Decide resolves the outcome for the given per-player activity and scores.
// A single player always gets GameOver. With two players, a lone active
// player wins; otherwise the higher score wins and equal scores tie.
func Decide(active []bool, scores []int) Outcome {
	if len(scores) < 2 {
		return GameOver
	}

	alive := -1
	count := 0
	for i, a := range active {
		if a {
			alive = i
			count++
		}
	}
	if count == 1 {
		return winner(alive)
	}

	switch {
	case scores[0] > scores[1]:
		return Player1Wins
	case scores[1] > scores[0]:
		return Player2Wins
	}
	return Tie
}

func winner(player int) Outcome {
	if player == 0 {
		return Player1Wins
	}
	return Player2Wins
}
