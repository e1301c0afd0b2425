package core

import "fmt"

// OutcomeReason says why a game ended
type OutcomeReason int

const (
	// ReasonNoMoves - the player to move had no legal action and lost
	ReasonNoMoves OutcomeReason = iota
	// ReasonFlagCaptured - the winner moved onto the opponent's Flag
	ReasonFlagCaptured
	// ReasonMaxTurns - the turn ceiling was reached without a winner
	ReasonMaxTurns
)

func (r OutcomeReason) String() string {
	switch r {
	case ReasonNoMoves:
		return "no_moves"
	case ReasonFlagCaptured:
		return "flag_captured"
	case ReasonMaxTurns:
		return "max_turns"
	default:
		return fmt.Sprintf("OutcomeReason(%d)", int(r))
	}
}

// ParseOutcomeReason converts the String form back to an OutcomeReason
func ParseOutcomeReason(s string) (OutcomeReason, error) {
	for r := ReasonNoMoves; r <= ReasonMaxTurns; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome reason %q", s)
}

// Outcome is the final result of one game. Winner is -1 when nobody won.
type Outcome struct {
	Winner int
	Turns  int
	Reason OutcomeReason
}

// IsDraw reports whether the game ended without a winner
func (o Outcome) IsDraw() bool { return o.Winner < 0 }

func (o Outcome) String() string {
	if o.IsDraw() {
		return fmt.Sprintf("no winner after %d turns (%s)", o.Turns, o.Reason)
	}
	return fmt.Sprintf("player %d won after %d turns (%s)", o.Winner, o.Turns, o.Reason)
}
