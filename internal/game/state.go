package game

import (
	"fmt"
	"slices"
	"sort"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// Placement puts one piece of a rank on a coordinate before the first turn
type Placement struct {
	Rank core.Rank
	Pos  core.Coordinate
}

// State is the full board for both players in the physical frame, player 0 at the top rows.
// Pieces and Bitmaps always agree: a bit is set iff a live piece of that side stands there.
// ApplyTurn is the only mutator.
type State struct {
	CurrentPlayer int
	Turn          int
	Pieces        [2][]core.Piece
	Bitmaps       [2]core.Bitmap
}

// NewState builds the starting state from both players' placements, given in the physical frame.
// Player 0 moves first.
func NewState(placements [2][]Placement) (*State, error) {
	s := &State{}

	for player, ps := range placements {
		s.Pieces[player] = make([]core.Piece, 0, len(ps))
		for _, p := range ps {
			if !p.Pos.IsValid() {
				return nil, core.WrapPlayerError(player, "initial placement",
					fmt.Errorf("%w: %s at %s is not a map position", core.ErrInvalidPlacement, p.Rank, p.Pos))
			}
			idx := p.Pos.ToIndex()
			if s.Bitmaps[0].Get(idx) || s.Bitmaps[1].Get(idx) {
				return nil, core.WrapPlayerError(player, "initial placement",
					fmt.Errorf("%w: %s is already occupied", core.ErrInvalidPlacement, p.Pos))
			}

			s.Bitmaps[player].Set(idx, true)
			s.Pieces[player] = append(s.Pieces[player], core.Piece{Rank: p.Rank, Pos: p.Pos})
		}
	}

	return s, nil
}

// ValidatePlacements checks that placements hold exactly the given ranks, each on a distinct
// valid coordinate of the player's own four home rows. Placements are in the physical frame.
func ValidatePlacements(player int, placements []Placement, ranks []core.Rank) error {
	if player != 0 && player != 1 {
		return core.ErrInvalidPlayer
	}
	if len(placements) != len(ranks) {
		return fmt.Errorf("%w: got %d pieces, want %d", core.ErrInvalidPlacement, len(placements), len(ranks))
	}

	want := make(map[core.Rank]int, len(ranks))
	for _, r := range ranks {
		want[r]++
	}

	var seen core.Bitmap
	for _, p := range placements {
		own := p.Pos
		if player == 1 {
			own = own.Reversed()
		}
		if !p.Pos.IsValid() || !own.IsHomeRow() {
			return fmt.Errorf("%w: %s placed outside home rows at %s", core.ErrInvalidPlacement, p.Rank, p.Pos)
		}
		if seen.Has(p.Pos) {
			return fmt.Errorf("%w: %s placed twice", core.ErrInvalidPlacement, p.Pos)
		}
		seen.Set(p.Pos.ToIndex(), true)

		want[p.Rank]--
		if want[p.Rank] < 0 {
			return fmt.Errorf("%w: too many pieces of rank %s", core.ErrInvalidPlacement, p.Rank)
		}
	}

	return nil
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := *s
	for i := range s.Pieces {
		c.Pieces[i] = slices.Clone(s.Pieces[i])
	}
	return &c
}

// Reversed returns the state seen from the other side of the board: sides are swapped,
// positions and bitmaps are point-reflected. A policy always finds its own pieces at index 0
// after the Orienter has reversed the view for player 1.
func (s *State) Reversed() *State {
	r := &State{
		CurrentPlayer: 1 - s.CurrentPlayer,
		Turn:          s.Turn,
	}

	for side := 0; side < 2; side++ {
		src := s.Pieces[1-side]
		dst := make([]core.Piece, len(src))
		for i, p := range src {
			p.Pos = p.Pos.Reversed()
			dst[i] = p
		}
		r.Pieces[side] = dst
		r.Bitmaps[side] = s.Bitmaps[1-side].Reversed()
	}

	return r
}

// HasPossibleMove reports whether the player to move has any legal action
func (s *State) HasPossibleMove() bool {
	p := s.CurrentPlayer
	return core.HasPossibleMove(s.Pieces[p], s.Bitmaps[p], s.Bitmaps[1-p])
}

// LegalActions appends every legal action of the player to move to buf
func (s *State) LegalActions(buf []core.Action) []core.Action {
	p := s.CurrentPlayer
	return core.AllPossibleMoves(s.Pieces[p], s.Bitmaps[p], s.Bitmaps[1-p], buf)
}

// ValidateAction checks action for the player to move. The first failing check decides the error.
func (s *State) ValidateAction(action core.Action) error {
	p := s.CurrentPlayer
	if err := s.validateAction(p, action); err != nil {
		return core.WrapActionError(p, action, err)
	}
	return nil
}

func (s *State) validateAction(p int, action core.Action) error {
	idx := core.FindPiece(s.Pieces[p], action.From)
	if idx < 0 {
		return core.ErrNoFriendlyPiece
	}

	piece := &s.Pieces[p][idx]
	if !piece.IsMovable() {
		return core.ErrPieceNotMovable
	}

	if action.To.InBounds() && s.Bitmaps[p].Has(action.To) {
		return core.ErrDestinationOccupied
	}

	if !action.To.IsValid() {
		return core.ErrInvalidDestination
	}

	if !action.IsStraight() {
		return core.ErrMovementNotStraight
	}

	dist := action.Distance()
	if piece.Rank == core.Scout {
		if dist == 0 || dist > core.ScoutMaxSteps(action.From, action.Direction(), s.Bitmaps[p], s.Bitmaps[1-p]) {
			return core.ErrInvalidMoveDistance
		}
	} else if dist != 1 {
		return core.ErrInvalidMoveDistance
	}

	return nil
}

// ResolveAction builds the Turn for a validated action of the player to move, attaching the
// Battle when the destination holds an enemy piece. flagCaptured is true when that enemy is the
// Flag; the game ends there and the returned Turn must not be applied.
func (s *State) ResolveAction(action core.Action) (turn Turn, flagCaptured bool) {
	p := s.CurrentPlayer
	turn = Turn{Player: p, Action: action}

	if !s.Bitmaps[1-p].Has(action.To) {
		return turn, false
	}

	atk := core.FindPiece(s.Pieces[p], action.From)
	def := core.FindPiece(s.Pieces[1-p], action.To)
	if atk < 0 || def < 0 {
		panic(fmt.Sprintf("resolve %s: battle participant missing", action))
	}

	defRank := s.Pieces[1-p][def].Rank
	if defRank == core.Flag {
		return turn, true
	}

	battle := core.ResolveBattle(p, s.Pieces[p][atk].Rank, defRank)
	turn.Battle = &battle
	return turn, false
}

// ApplyTurn folds one turn into the state. The turn must come from a validated action:
// a missing mover or battle participant is a broken invariant and panics.
func (s *State) ApplyTurn(turn Turn) {
	id := turn.Player
	other := 1 - id
	from, to := turn.Action.From, turn.Action.To

	s.Bitmaps[id].Set(from.ToIndex(), false)

	idx := core.FindPiece(s.Pieces[id], from)
	if idx < 0 {
		panic(fmt.Sprintf("apply turn %d: player %d has no piece on %s", s.Turn, id, from))
	}

	moverDied := false
	if b := turn.Battle; b != nil {
		def := core.FindPiece(s.Pieces[other], to)
		if def < 0 {
			panic(fmt.Sprintf("apply turn %d: player %d has no piece on %s to battle", s.Turn, other, to))
		}

		s.reveal(id, idx, b.Ranks[id])
		s.reveal(other, def, b.Ranks[other])

		if b.Died[other] {
			s.Bitmaps[other].Set(to.ToIndex(), false)
			s.Pieces[other] = slices.Delete(s.Pieces[other], def, def+1)
		}
		if b.Died[id] {
			s.Pieces[id] = slices.Delete(s.Pieces[id], idx, idx+1)
			moverDied = true
		}
	} else if s.Bitmaps[other].Has(to) {
		panic(fmt.Sprintf("apply turn %d: %s moves onto an enemy piece without a battle", s.Turn, turn.Action))
	}

	if !moverDied {
		s.Bitmaps[id].Set(to.ToIndex(), true)
		piece := &s.Pieces[id][idx]
		piece.Pos = to
		piece.HasMoved = true
	}

	s.Turn++
	s.CurrentPlayer = other
}

// reveal marks a battle participant as known. Hidden ranks learn their value from the battle.
func (s *State) reveal(player, idx int, rank core.Rank) {
	p := &s.Pieces[player][idx]
	p.Revealed = true
	if p.Rank == core.Unknown {
		p.Rank = rank
	}
}

// CheckConsistency verifies that every bitmap matches its piece list and the sides never overlap
func (s *State) CheckConsistency() error {
	if s.CurrentPlayer != 0 && s.CurrentPlayer != 1 {
		return fmt.Errorf("current player %d: %w", s.CurrentPlayer, core.ErrInvalidPlayer)
	}

	for side := 0; side < 2; side++ {
		positions := make([]int, 0, len(s.Pieces[side]))
		for _, p := range s.Pieces[side] {
			if !p.Pos.IsValid() {
				return fmt.Errorf("player %d: piece %s on invalid position %s", side, p.Rank, p.Pos)
			}
			positions = append(positions, p.Pos.ToIndex())
		}
		sort.Ints(positions)

		if got := s.Bitmaps[side].Indices(); !slices.Equal(got, positions) {
			return fmt.Errorf("player %d: bitmap %v does not match pieces %v", side, got, positions)
		}
	}

	for _, idx := range s.Bitmaps[0].Indices() {
		if s.Bitmaps[1].Get(idx) {
			return fmt.Errorf("both players occupy %s", core.FromIndex(idx))
		}
	}

	return nil
}
