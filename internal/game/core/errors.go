package core

import (
	"errors"
	"fmt"
)

// Action validation failures, in the order ValidateAction checks them
var (
	ErrNoFriendlyPiece     = errors.New("no friendly piece on from position")
	ErrPieceNotMovable     = errors.New("friendly piece is not movable")
	ErrDestinationOccupied = errors.New("to position occupied by friendly piece")
	ErrInvalidDestination  = errors.New("to position is not a valid map position")
	ErrMovementNotStraight = errors.New("movement is not straight")
	ErrInvalidMoveDistance = errors.New("invalid movement distance")
)

var (
	ErrGameOver         = errors.New("game is over")
	ErrInvalidPlayer    = errors.New("invalid player ID")
	ErrUnknownRank      = errors.New("unknown rank")
	ErrInvalidPlacement = errors.New("invalid initial placement")
)

// ActionError reports a rejected action together with the player who submitted it
type ActionError struct {
	PlayerID int
	Action   Action
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("player %d: move from %s to %s: %v", e.PlayerID, e.Action.From, e.Action.To, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError adds player and action context to err. A nil err stays nil.
func WrapActionError(playerID int, action Action, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{PlayerID: playerID, Action: action, Err: err}
}

// WrapGameStateError adds the turn and phase to err. A nil err stays nil.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapPlayerError adds the player and operation to err. A nil err stays nil.
func WrapPlayerError(playerID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("player %d %s: %w", playerID, operation, err)
}

// GameError is a structured error carrying turn and player context
type GameError struct {
	Turn      int
	PlayerID  int
	Operation string
	Err       error
}

// NewGameError creates a GameError. A negative playerID means no player is involved.
func NewGameError(turn, playerID int, operation string, err error) *GameError {
	return &GameError{
		Turn:      turn,
		PlayerID:  playerID,
		Operation: operation,
		Err:       err,
	}
}

func (e *GameError) Error() string {
	if e.PlayerID >= 0 {
		return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }
