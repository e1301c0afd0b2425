package protocol

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

var (
	ErrNoLastMove    = errors.New("snapshot has no last move")
	ErrInvalidWinner = errors.New("battle winner is not a player")
	ErrInvalidSeat   = errors.New("seat is not 0 or 1")
)

// FromCoordinate converts a board coordinate to its wire form
func FromCoordinate(c core.Coordinate) Position {
	return Position{X: c.X, Y: c.Y}
}

// Coordinate converts a wire position to a board coordinate
func (p Position) Coordinate() core.Coordinate {
	return core.Coordinate{X: p.X, Y: p.Y}
}

// FromAction converts an action to a move command
func FromAction(a core.Action) Move {
	return Move{From: FromCoordinate(a.From), To: FromCoordinate(a.To)}
}

// Action converts a wire move to an action
func (m Move) Action() core.Action {
	return core.Action{From: m.From.Coordinate(), To: m.To.Coordinate()}
}

// NewSetupBoard converts physical-frame placements to the setup command
func NewSetupBoard(placements []game.Placement) SetupBoard {
	pieces := make([]PiecePlacement, len(placements))
	for i, p := range placements {
		pieces[i] = PiecePlacement{Rank: p.Rank, Position: FromCoordinate(p.Pos)}
	}
	return SetupBoard{Pieces: pieces}
}

// Battle converts a battle report to a battle indexed by player id
func (b BattleResult) Battle() (core.Battle, error) {
	if b.Attacker.Player != 0 && b.Attacker.Player != 1 {
		return core.Battle{}, fmt.Errorf("attacker %d: %w", b.Attacker.Player, ErrInvalidSeat)
	}

	var battle core.Battle
	battle.Ranks[b.Attacker.Player] = b.Attacker.Rank
	battle.Ranks[1-b.Attacker.Player] = b.Defender.Rank

	switch {
	case b.Winner == nil:
		battle.Died = [2]bool{true, true}
	case *b.Winner == 0:
		battle.Died = [2]bool{false, true}
	case *b.Winner == 1:
		battle.Died = [2]bool{true, false}
	default:
		return core.Battle{}, fmt.Errorf("%w: %d", ErrInvalidWinner, *b.Winner)
	}

	return battle, nil
}

// Turn extracts the turn that produced the snapshot. The last mover is the player who is not active now.
func (gs *GameState) Turn() (game.Turn, error) {
	if gs.LastMove == nil {
		return game.Turn{}, ErrNoLastMove
	}
	if gs.ActivePlayer != 0 && gs.ActivePlayer != 1 {
		return game.Turn{}, fmt.Errorf("active player %d: %w", gs.ActivePlayer, ErrInvalidSeat)
	}

	turn := game.Turn{
		Player: 1 - gs.ActivePlayer,
		Action: gs.LastMove.Action(),
	}

	if gs.BattleResult != nil {
		battle, err := gs.BattleResult.Battle()
		if err != nil {
			return game.Turn{}, err
		}
		turn.Battle = &battle
	}

	return turn, nil
}

// NewStateFromSnapshot builds a state from a snapshot. Tiles without a readable rank hold
// Unknown pieces; a piece is revealed exactly when its rank is known.
func NewStateFromSnapshot(gs *GameState) (*game.State, error) {
	if gs.ActivePlayer != 0 && gs.ActivePlayer != 1 {
		return nil, fmt.Errorf("active player %d: %w", gs.ActivePlayer, ErrInvalidSeat)
	}

	s := &game.State{
		CurrentPlayer: gs.ActivePlayer,
		Turn:          gs.TurnNumber,
	}

	for _, tile := range gs.Board {
		if tile.Owner == nil {
			continue
		}
		owner := *tile.Owner
		pos := tile.Coordinate.Coordinate()
		if owner != 0 && owner != 1 {
			return nil, fmt.Errorf("tile %s owner %d: %w", pos, owner, ErrInvalidSeat)
		}
		if !pos.IsValid() {
			return nil, fmt.Errorf("tile %s is not a map position", pos)
		}
		if s.Bitmaps[0].Has(pos) || s.Bitmaps[1].Has(pos) {
			return nil, fmt.Errorf("tile %s listed twice", pos)
		}

		rank := core.Unknown
		if tile.Rank != nil {
			if r, err := core.ParseRank(*tile.Rank); err == nil {
				rank = r
			}
		}

		s.Pieces[owner] = append(s.Pieces[owner], core.Piece{
			Rank:     rank,
			Pos:      pos,
			Revealed: rank != core.Unknown,
		})
		s.Bitmaps[owner].Set(pos.ToIndex(), true)
	}

	return s, nil
}
