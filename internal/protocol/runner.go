package protocol

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/rs/zerolog"
)

// Runner plays one game against the judge: it reads snapshots from in and writes commands to out
type Runner struct {
	policy   game.Policy
	ranks    []core.Rank
	in       *bufio.Reader
	out      io.Writer
	logger   zerolog.Logger
	validate bool
}

// RunnerConfig holds configuration for a Runner
type RunnerConfig struct {
	Policy game.Policy
	// Ranks is the piece set to place, core.StartingRanks when empty
	Ranks []core.Rank
	In    io.Reader
	Out   io.Writer
	// ValidateActions checks every action of the policy before sending it
	ValidateActions bool
	Logger          zerolog.Logger
}

// NewRunner creates a runner
func NewRunner(cfg RunnerConfig) *Runner {
	ranks := cfg.Ranks
	if len(ranks) == 0 {
		ranks = core.StartingRanks
	}
	return &Runner{
		policy:   cfg.Policy,
		ranks:    ranks,
		in:       bufio.NewReader(cfg.In),
		out:      cfg.Out,
		logger:   cfg.Logger.With().Str("component", "ProtocolRunner").Logger(),
		validate: cfg.ValidateActions,
	}
}

// Run plays until the judge closes the input. A closed input is a normal end of game.
func (r *Runner) Run(ctx context.Context) error {
	err := r.run(ctx)
	if errors.Is(err, io.EOF) {
		r.logger.Info().Msg("Judge closed the connection")
		return nil
	}
	return err
}

func (r *Runner) run(ctx context.Context) error {
	if _, err := fmt.Fprintln(r.out, BotStart); err != nil {
		return fmt.Errorf("write %s: %w", BotStart, err)
	}

	var init GameInit
	if err := r.read(&init); err != nil {
		return err
	}
	if init.You != 0 && init.You != 1 {
		return fmt.Errorf("game init: seat %d: %w", init.You, ErrInvalidSeat)
	}
	player := init.You
	logger := r.logger.With().Int("player_id", player).Logger()
	logger.Info().Msg("Game initialized")

	orienter := game.NewOrienter(r.policy, player)

	placements := orienter.InitialPlacements(r.ranks)
	if err := game.ValidatePlacements(player, placements, r.ranks); err != nil {
		return core.WrapPlayerError(player, "initial placement", err)
	}
	if err := r.write(NewSetupBoard(placements)); err != nil {
		return err
	}

	var snapshot GameState
	if err := r.read(&snapshot); err != nil {
		return err
	}
	state, err := NewStateFromSnapshot(&snapshot)
	if err != nil {
		return fmt.Errorf("starting snapshot: %w", err)
	}
	orienter.OpponentPlacement(state.OpponentPositions(player))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if state.CurrentPlayer == player {
			action := orienter.Action(state.View(player))
			if r.validate {
				if err := state.ValidateAction(action); err != nil {
					return core.NewGameError(state.Turn, player, "select action", err)
				}
			}
			logger.Debug().Int("turn", state.Turn).Str("action", action.String()).Msg("Sending move")
			if err := r.write(FromAction(action)); err != nil {
				return err
			}
		}

		// Exactly one confirmation per turn, whoever moved
		snapshot = GameState{}
		if err := r.read(&snapshot); err != nil {
			return err
		}
		turn, err := snapshot.Turn()
		if err != nil {
			return core.WrapGameStateError(state.Turn, "snapshot", err)
		}
		if err := checkTurn(state, turn); err != nil {
			return core.WrapGameStateError(state.Turn, "snapshot", err)
		}

		state.ApplyTurn(turn)
		logger.Debug().Str("turn", turn.String()).Msg("Turn applied")

		if turn.Player != player {
			orienter.OpponentAction(state.View(player), turn.Action)
		}
	}
}

// checkTurn rejects reported turns that ApplyTurn cannot fold into state
func checkTurn(state *game.State, turn game.Turn) error {
	switch {
	case turn.Player != state.CurrentPlayer:
		return fmt.Errorf("player %d moved but player %d was to move", turn.Player, state.CurrentPlayer)
	case !state.Bitmaps[turn.Player].Has(turn.Action.From):
		return fmt.Errorf("player %d has no piece on %s", turn.Player, turn.Action.From)
	case !turn.Action.To.IsValid():
		return fmt.Errorf("move to %s leaves the map", turn.Action.To)
	case state.Bitmaps[turn.Player].Has(turn.Action.To):
		return fmt.Errorf("move %s lands on a friendly piece", turn.Action)
	case turn.Battle == nil && state.Bitmaps[1-turn.Player].Has(turn.Action.To):
		return fmt.Errorf("move %s hits an enemy without a battle result", turn.Action)
	case turn.Battle != nil && !state.Bitmaps[1-turn.Player].Has(turn.Action.To):
		return fmt.Errorf("battle reported on %s but no enemy stands there", turn.Action.To)
	}
	return nil
}

// read decodes one line. A final line without a newline still counts.
func (r *Runner) read(v any) error {
	line, err := r.in.ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return err
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

func (r *Runner) write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}
	data = append(data, '\n')
	if _, err := r.out.Write(data); err != nil {
		return fmt.Errorf("write %T: %w", v, err)
	}
	return nil
}
