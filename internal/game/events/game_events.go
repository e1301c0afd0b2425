package events

import (
	"time"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypePlacementDone   = "placement.done"
	TypeTurnApplied     = "turn.applied"
	TypeBattleResolved  = "battle.resolved"
	TypeActionRejected  = "action.rejected"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published once both placements are accepted
type GameStartedEvent struct {
	BaseEvent
	Policies [2]string
	Pieces   int
	MaxTurns int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, policies [2]string, pieces, maxTurns int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Policies:  policies,
		Pieces:    pieces,
		MaxTurns:  maxTurns,
	}
}

// GameEndedEvent is published when a game reaches a terminal outcome
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	Reason    string
	FinalTurn int
	Duration  time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, outcome core.Outcome, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    outcome.Winner,
		Reason:    outcome.Reason.String(),
		FinalTurn: outcome.Turns,
		Duration:  duration,
	}
}

// PlacementDoneEvent is published when a player's initial placement is accepted
type PlacementDoneEvent struct {
	BaseEvent
	PlayerID int
	Pieces   int
}

// NewPlacementDoneEvent creates a new PlacementDoneEvent
func NewPlacementDoneEvent(gameID string, playerID, pieces int) *PlacementDoneEvent {
	return &PlacementDoneEvent{
		BaseEvent: newBase(TypePlacementDone, gameID),
		PlayerID:  playerID,
		Pieces:    pieces,
	}
}

// TurnAppliedEvent is published after a turn has been folded into the state
type TurnAppliedEvent struct {
	BaseEvent
	Turn     int
	PlayerID int
	From     core.Coordinate
	To       core.Coordinate
	Battle   bool
}

// NewTurnAppliedEvent creates a new TurnAppliedEvent
func NewTurnAppliedEvent(gameID string, turn, playerID int, action core.Action, battle bool) *TurnAppliedEvent {
	return &TurnAppliedEvent{
		BaseEvent: newBase(TypeTurnApplied, gameID),
		Turn:      turn,
		PlayerID:  playerID,
		From:      action.From,
		To:        action.To,
		Battle:    battle,
	}
}

// BattleResolvedEvent is published when a move ends in combat
type BattleResolvedEvent struct {
	BaseEvent
	Turn         int
	AttackerID   int
	Location     core.Coordinate
	AttackerRank core.Rank
	DefenderRank core.Rank
	Winner       int // -1 when both pieces died
}

// NewBattleResolvedEvent creates a new BattleResolvedEvent
func NewBattleResolvedEvent(gameID string, turn, attacker int, location core.Coordinate, battle core.Battle) *BattleResolvedEvent {
	return &BattleResolvedEvent{
		BaseEvent:    newBase(TypeBattleResolved, gameID),
		Turn:         turn,
		AttackerID:   attacker,
		Location:     location,
		AttackerRank: battle.Ranks[attacker],
		DefenderRank: battle.Ranks[1-attacker],
		Winner:       battle.Winner(),
	}
}

// ActionRejectedEvent is published when a policy returns an illegal action
type ActionRejectedEvent struct {
	BaseEvent
	Turn     int
	PlayerID int
	Action   core.Action
	Reason   string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, turn, playerID int, action core.Action, err error) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Turn:      turn,
		PlayerID:  playerID,
		Action:    action,
		Reason:    err.Error(),
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
