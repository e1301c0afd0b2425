package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/events"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/rules"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/states"
	"github.com/rs/zerolog"
)

// CoordinatorInitializer handles the setup phase of a game: defaults, placements and the
// transition into play
type CoordinatorInitializer struct {
	config CoordinatorConfig
	logger zerolog.Logger
}

// NewCoordinatorInitializer creates a new coordinator initializer
func NewCoordinatorInitializer(cfg CoordinatorConfig) *CoordinatorInitializer {
	return &CoordinatorInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Coordinator").Logger(),
	}
}

// Initialize creates a coordinator whose game is in PhaseInProgress
func (ci *CoordinatorInitializer) Initialize() (*Coordinator, error) {
	if ci.config.Policies[0] == nil || ci.config.Policies[1] == nil {
		return nil, errors.New("coordinator needs a policy for each player")
	}

	ci.setupDefaults()

	c := ci.createCoordinator()

	placements, err := ci.collectPlacements(c)
	if err != nil {
		c.fail(err)
		return nil, err
	}

	state, err := NewState(placements)
	if err != nil {
		c.fail(err)
		return nil, err
	}
	c.state = state

	for p, o := range c.orienters {
		o.OpponentPlacement(state.OpponentPositions(p))
	}

	if err := c.stateMachine.TransitionTo(states.PhaseInProgress, "Placements accepted"); err != nil {
		ci.logger.Error().Err(err).Msg("Failed to transition to InProgress state")
		return nil, err
	}

	c.startTime = time.Now()
	c.eventBus.Publish(events.NewGameStartedEvent(
		c.gameID,
		ci.config.PolicyNames,
		len(ci.config.StartingRanks),
		ci.config.MaxTurns,
	))

	c.logger.Info().
		Str("player_0", ci.config.PolicyNames[0]).
		Str("player_1", ci.config.PolicyNames[1]).
		Int("max_turns", ci.config.MaxTurns).
		Bool("validate_actions", ci.config.ValidateActions).
		Msg("Coordinator created successfully")

	return c, nil
}

// setupDefaults fills in missing configuration
func (ci *CoordinatorInitializer) setupDefaults() {
	if ci.config.GameID == "" {
		ci.config.GameID = uuid.NewString()
	}
	if len(ci.config.StartingRanks) == 0 {
		ci.config.StartingRanks = core.StartingRanks
	}
	if ci.config.MaxTurns <= 0 {
		ci.config.MaxTurns = DefaultMaxTurns
	}
	for p := range ci.config.PolicyNames {
		if ci.config.PolicyNames[p] == "" {
			ci.config.PolicyNames[p] = "anonymous"
		}
	}
	if ci.config.EventBus == nil {
		ci.logger.Debug().Msg("No event bus provided, creating a private one")
		ci.config.EventBus = events.NewEventBus(ci.config.Logger)
	}
}

// createCoordinator wires the coordinator's components
func (ci *CoordinatorInitializer) createCoordinator() *Coordinator {
	logger := ci.logger.With().Str("game_id", ci.config.GameID).Logger()
	gameContext := states.NewGameContext(ci.config.GameID, ci.config.Logger)

	c := &Coordinator{
		gameID:       ci.config.GameID,
		config:       ci.config,
		state:        &State{},
		logger:       logger,
		eventBus:     ci.config.EventBus,
		stateMachine: states.NewStateMachine(gameContext, ci.config.EventBus),
		winCondition: rules.NewWinConditionChecker(logger, ci.config.MaxTurns),
	}
	for p := range c.orienters {
		c.orienters[p] = NewOrienter(ci.config.Policies[p], p)
	}
	c.turnProcessor = NewTurnProcessor(c)

	return c
}

// collectPlacements asks each player for its pieces and validates them in the physical frame
func (ci *CoordinatorInitializer) collectPlacements(c *Coordinator) ([2][]Placement, error) {
	var placements [2][]Placement
	gameContext := c.stateMachine.GetContext()

	for p, o := range c.orienters {
		ps := o.InitialPlacements(ci.config.StartingRanks)
		if err := ValidatePlacements(p, ps, ci.config.StartingRanks); err != nil {
			c.logger.Warn().Err(err).Int("player_id", p).Msg("Initial placement rejected")
			return placements, core.WrapPlayerError(p, "initial placement", err)
		}

		placements[p] = ps
		gameContext.PlacedPlayers++
		c.eventBus.Publish(events.NewPlacementDoneEvent(c.gameID, p, len(ps)))
	}

	return placements, nil
}
