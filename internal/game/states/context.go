package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// PlacedPlayers counts the initial placements accepted so far
	PlacedPlayers int

	// StartTime is when PhaseInProgress was entered
	StartTime time.Time

	// Turn is the last turn number the coordinator reported
	Turn int

	// Winner is the winning player, -1 while undecided or on a draw
	Winner int

	// Reason names why the game ended
	Reason string

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
		Winner: -1,
	}
}

// IsReady returns true once both players have placed their pieces
func (gc *GameContext) IsReady() bool {
	return gc.PlacedPlayers == 2
}

// GetElapsedTime returns the time elapsed since the first turn
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

func (gc *GameContext) reset() {
	gc.PlacedPlayers = 0
	gc.StartTime = time.Time{}
	gc.Turn = 0
	gc.Winner = -1
	gc.Reason = ""
	gc.Error = nil
}
