package game

import (
	"context"
	"fmt"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/events"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single ply
type TurnProcessor struct {
	coordinator *Coordinator
	logger      zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(coordinator *Coordinator) *TurnProcessor {
	return &TurnProcessor{
		coordinator: coordinator,
		logger:      coordinator.logger,
	}
}

// ProcessTurn plays one ply for the player to move. It returns the outcome and true when the
// game ended instead of a turn being applied.
func (tp *TurnProcessor) ProcessTurn(ctx context.Context) (core.Outcome, bool, error) {
	if err := tp.checkContext(ctx, "before turn"); err != nil {
		return core.Outcome{}, false, err
	}

	if err := tp.validateGameState(); err != nil {
		return core.Outcome{}, false, err
	}

	c := tp.coordinator
	s := c.state
	player := s.CurrentPlayer
	turnNumber := s.Turn

	if outcome, over := c.winCondition.CheckBeforeTurn(turnNumber, player, s.HasPossibleMove()); over {
		return outcome, true, nil
	}

	turnLogger := tp.logger.With().Int("turn", turnNumber).Int("player_id", player).Logger()

	action := c.orienters[player].Action(s.View(player))

	if c.config.ValidateActions {
		if err := s.ValidateAction(action); err != nil {
			turnLogger.Warn().Err(err).Str("action", action.String()).Msg("Policy returned an illegal action")
			c.eventBus.Publish(events.NewActionRejectedEvent(c.gameID, turnNumber, player, action, err))
			return core.Outcome{}, false, core.NewGameError(turnNumber, player, "select action", err)
		}
	}

	turn, flagCaptured := s.ResolveAction(action)
	if outcome, over := c.winCondition.CheckCapture(turnNumber, player, flagCaptured); over {
		return outcome, true, nil
	}

	if b := turn.Battle; b != nil {
		turnLogger.Debug().
			Str("attacker_rank", b.Ranks[player].String()).
			Str("defender_rank", b.Ranks[1-player].String()).
			Int("winner", b.Winner()).
			Msg("Battle resolved")
		c.eventBus.Publish(events.NewBattleResolvedEvent(c.gameID, turnNumber, player, action.To, *b))
	}

	s.ApplyTurn(turn)

	if c.config.ValidateActions {
		if err := s.CheckConsistency(); err != nil {
			panic(fmt.Sprintf("turn %d left the board inconsistent: %v", turnNumber, err))
		}
	}

	c.eventBus.Publish(events.NewTurnAppliedEvent(c.gameID, turnNumber, player, action, turn.Battle != nil))
	turnLogger.Debug().Str("turn", turn.String()).Msg("Turn applied")

	opponent := 1 - player
	c.orienters[opponent].OpponentAction(s.View(opponent), action)

	return core.Outcome{}, false, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.coordinator.state.Turn).
			Str("phase", phase).
			Msg("Game cancelled or timed out")
		return core.WrapGameStateError(tp.coordinator.state.Turn, phase, ctx.Err())
	default:
		return nil
	}
}

// validateGameState ensures the game can receive actions
func (tp *TurnProcessor) validateGameState() error {
	currentPhase := tp.coordinator.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveActions() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Int("turn", tp.coordinator.state.Turn).
			Msg("Attempted to play a turn in a phase that cannot receive actions")
		return core.WrapGameStateError(tp.coordinator.state.Turn, currentPhase.String(), core.ErrGameOver)
	}
	return nil
}
