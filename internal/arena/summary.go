package arena

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/storage"
)

// Summary aggregates a batch of games. Wins is indexed like Config.Policies, SeatWins by
// the seat that won.
type Summary struct {
	Policies   [2]string
	Games      int
	Timeouts   int
	Wins       [2]int
	SeatWins   [2]int
	TotalTurns int
	Reasons    map[string]int
	Duration   time.Duration
}

// NewSummary creates an empty summary for the given policies
func NewSummary(policies [2]string) *Summary {
	return &Summary{Policies: policies, Reasons: make(map[string]int)}
}

// Add folds one result in. firstSlot is the Config.Policies index that held seat 0.
func (s *Summary) Add(r *storage.GameResult, firstSlot int) {
	s.Games++
	s.TotalTurns += r.Turns
	s.Reasons[r.Reason]++

	if r.Winner < 0 || r.Reason == core.ReasonMaxTurns.String() {
		s.Timeouts++
		return
	}

	s.SeatWins[r.Winner]++
	slot := firstSlot
	if r.Winner == 1 {
		slot = 1 - firstSlot
	}
	s.Wins[slot]++
}

// AverageTurns is the mean game length, timeouts included
func (s *Summary) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

func (s *Summary) String() string {
	return fmt.Sprintf("[Total games: %d] [Timeouts: %d] [Wins: %s %d | %s %d] [Average turns: %.2f]",
		s.Games, s.Timeouts, s.Policies[0], s.Wins[0], s.Policies[1], s.Wins[1], s.AverageTurns())
}
