package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/events"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/rules"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/states"
	"github.com/rs/zerolog"
)

// CoordinatorConfig holds configuration for one game
type CoordinatorConfig struct {
	// Policies are indexed by physical seat. Player 0 moves first.
	Policies    [2]Policy
	PolicyNames [2]string
	// StartingRanks is the piece set each player places, core.StartingRanks when empty
	StartingRanks []core.Rank
	MaxTurns      int
	// ValidateActions checks every policy action before resolving it
	ValidateActions bool
	GameID          string
	Logger          zerolog.Logger
	EventBus        *events.EventBus
}

// Coordinator owns the state of one game and drives its turn loop. It is not safe for
// concurrent use; run independent games on independent coordinators.
type Coordinator struct {
	gameID        string
	config        CoordinatorConfig
	state         *State
	orienters     [2]*Orienter
	logger        zerolog.Logger
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	winCondition  *rules.WinConditionChecker
	turnProcessor *TurnProcessor
	outcome       core.Outcome
	startTime     time.Time
}

// NewCoordinator collects and validates both placements and returns a game ready to Play
func NewCoordinator(cfg CoordinatorConfig) (*Coordinator, error) {
	return NewCoordinatorInitializer(cfg).Initialize()
}

// Play runs turns until the game ends or ctx is cancelled
func (c *Coordinator) Play(ctx context.Context) (core.Outcome, error) {
	phase := c.stateMachine.CurrentPhase()
	if phase.IsTerminal() {
		return c.outcome, core.WrapGameStateError(c.state.Turn, phase.String(), core.ErrGameOver)
	}

	for {
		outcome, over, err := c.turnProcessor.ProcessTurn(ctx)
		if err != nil {
			c.fail(err)
			return core.Outcome{}, err
		}
		if over {
			c.finish(outcome)
			return outcome, nil
		}
	}
}

// Step runs a single turn. It reports true once the game has ended.
func (c *Coordinator) Step(ctx context.Context) (bool, error) {
	phase := c.stateMachine.CurrentPhase()
	if phase.IsTerminal() {
		return true, core.WrapGameStateError(c.state.Turn, phase.String(), core.ErrGameOver)
	}

	outcome, over, err := c.turnProcessor.ProcessTurn(ctx)
	if err != nil {
		c.fail(err)
		return true, err
	}
	if over {
		c.finish(outcome)
	}
	return over, nil
}

func (c *Coordinator) finish(outcome core.Outcome) {
	c.outcome = outcome

	gameCtx := c.stateMachine.GetContext()
	gameCtx.Turn = outcome.Turns
	gameCtx.Winner = outcome.Winner
	gameCtx.Reason = outcome.Reason.String()
	if err := c.stateMachine.TransitionTo(states.PhaseTerminal, outcome.Reason.String()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to transition to Terminal state")
	}

	c.eventBus.Publish(events.NewGameEndedEvent(c.gameID, outcome, time.Since(c.startTime)))

	if e := c.logger.Debug(); e.Enabled() {
		stats := c.state.Stats()
		for p, st := range stats {
			e = e.Dict(fmt.Sprintf("player_%d_stats", p), zerolog.Dict().
				Int("pieces", st.Pieces).
				Int("movable", st.Movable).
				Int("revealed", st.Revealed).
				Int("moved", st.Moved).
				Bool("has_flag", st.HasFlag))
		}
		e.Int("winner", outcome.Winner).
			Int("turns", outcome.Turns).
			Str("reason", outcome.Reason.String()).
			Msg("Game finished")
	}
}

func (c *Coordinator) fail(err error) {
	gameCtx := c.stateMachine.GetContext()
	gameCtx.Turn = c.state.Turn
	gameCtx.Error = err
	if tErr := c.stateMachine.TransitionTo(states.PhaseError, "turn failed"); tErr != nil {
		c.logger.Error().Err(tErr).Msg("Failed to transition to Error state")
	}
}

// GameID returns the game's unique id
func (c *Coordinator) GameID() string {
	return c.gameID
}

// State returns a copy of the current physical-frame state
func (c *Coordinator) State() *State {
	return c.state.Clone()
}

// CurrentPhase returns the lifecycle phase of the game
func (c *Coordinator) CurrentPhase() states.GamePhase {
	return c.stateMachine.CurrentPhase()
}

// Outcome returns the result once the game reached PhaseTerminal
func (c *Coordinator) Outcome() (core.Outcome, bool) {
	return c.outcome, c.stateMachine.CurrentPhase() == states.PhaseTerminal
}

// IsGameOver reports whether no more turns will be played
func (c *Coordinator) IsGameOver() bool {
	return c.stateMachine.CurrentPhase().IsTerminal()
}

// EventBus returns the bus this game publishes to
func (c *Coordinator) EventBus() *events.EventBus {
	return c.eventBus
}

// Board renders the current state as seen by viewer, -1 for everyone
func (c *Coordinator) Board(viewer int) string {
	return c.state.Render(viewer, true)
}

func (c *Coordinator) String() string {
	return fmt.Sprintf("game %s: %s vs %s, turn %d, %s",
		c.gameID, c.config.PolicyNames[0], c.config.PolicyNames[1], c.state.Turn, c.stateMachine.CurrentPhase())
}
