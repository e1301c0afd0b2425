package rules

import (
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger   zerolog.Logger
	maxTurns int
}

// NewWinConditionChecker creates a new win condition checker. maxTurns <= 0 means no ceiling.
func NewWinConditionChecker(logger zerolog.Logger, maxTurns int) *WinConditionChecker {
	return &WinConditionChecker{
		logger:   logger.With().Str("component", "WinConditionChecker").Logger(),
		maxTurns: maxTurns,
	}
}

// CheckBeforeTurn runs before the active player is asked for an action.
// The turn ceiling is checked first, then whether the active player can move at all.
func (wc *WinConditionChecker) CheckBeforeTurn(turn, player int, canMove bool) (core.Outcome, bool) {
	if wc.maxTurns > 0 && turn >= wc.maxTurns {
		wc.logger.Info().Int("turn", turn).Msg("Turn ceiling reached without a winner")
		return core.Outcome{Winner: -1, Turns: turn, Reason: core.ReasonMaxTurns}, true
	}

	if !canMove {
		winner := 1 - player
		wc.logger.Info().
			Int("turn", turn).
			Int("loser", player).
			Int("winner_player_id", winner).
			Msg("Player has no legal move")
		return core.Outcome{Winner: winner, Turns: turn, Reason: core.ReasonNoMoves}, true
	}

	return core.Outcome{}, false
}

// CheckCapture runs after the active player's action is resolved.
// Capturing the Flag ends the game before any battle is applied.
func (wc *WinConditionChecker) CheckCapture(turn, player int, flagCaptured bool) (core.Outcome, bool) {
	if !flagCaptured {
		return core.Outcome{}, false
	}

	wc.logger.Info().Int("turn", turn).Int("winner_player_id", player).Msg("Flag captured")
	return core.Outcome{Winner: player, Turns: turn, Reason: core.ReasonFlagCaptured}, true
}
