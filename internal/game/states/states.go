package states

import (
	"errors"
	"fmt"
	"time"
)

// SetupState collects initial placements
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("placed_players", ctx.PlacedPlayers).
		Msg("Placements collected")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// InProgressState represents active gameplay
type InProgressState struct{}

func NewInProgressState() State {
	return &InProgressState{}
}

func (s *InProgressState) Phase() GamePhase {
	return PhaseInProgress
}

func (s *InProgressState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *InProgressState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("turn", ctx.Turn).
		Msg("Exiting InProgress state")
	return nil
}

func (s *InProgressState) Validate(ctx *GameContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("both players must place pieces before play, have %d", ctx.PlacedPlayers)
	}
	return nil
}

// TerminalState is entered once an outcome is decided
type TerminalState struct{}

func NewTerminalState() State {
	return &TerminalState{}
}

func (s *TerminalState) Phase() GamePhase {
	return PhaseTerminal
}

func (s *TerminalState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Str("reason", ctx.Reason).
		Int("turns", ctx.Turn).
		Msg("Game over")
	return nil
}

func (s *TerminalState) Exit(ctx *GameContext) error {
	return nil
}

func (s *TerminalState) Validate(ctx *GameContext) error {
	if ctx.Reason == "" {
		return errors.New("terminal state requires an outcome reason")
	}
	if ctx.Winner < -1 || ctx.Winner > 1 {
		return fmt.Errorf("invalid winner %d", ctx.Winner)
	}
	return nil
}

// ErrorState is entered when the game cannot continue
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Int("turn", ctx.Turn).
		Msg("Game aborted")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires an error")
	}
	return nil
}
