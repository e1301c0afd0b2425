package game

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// Orienter binds a Policy to a physical seat. For player 1 it reverses everything going in and
// out, so the wrapped policy never needs to know which side it plays.
type Orienter struct {
	policy   Policy
	observer Observer
	player   int
}

// NewOrienter wraps policy for player 0 or 1
func NewOrienter(policy Policy, player int) *Orienter {
	o := &Orienter{policy: policy, player: player}
	if obs, ok := policy.(Observer); ok {
		o.observer = obs
	}
	return o
}

// Player returns the physical seat
func (o *Orienter) Player() int {
	return o.player
}

// Policy returns the wrapped policy
func (o *Orienter) Policy() Policy {
	return o.policy
}

// InitialPlacements asks the policy for placements and returns them in the physical frame
func (o *Orienter) InitialPlacements(ranks []core.Rank) []Placement {
	placements := o.policy.InitialPlacements(ranks)
	if o.player == 0 {
		return placements
	}

	out := make([]Placement, len(placements))
	for i, p := range placements {
		out[i] = Placement{Rank: p.Rank, Pos: p.Pos.Reversed()}
	}
	return out
}

// Action takes a physical-frame view and returns the policy's action in the physical frame
func (o *Orienter) Action(view *State) core.Action {
	if o.player == 0 {
		return o.policy.Action(view)
	}
	return o.policy.Action(view.Reversed()).Reversed()
}

// OpponentPlacement forwards physical opponent positions in the policy's frame
func (o *Orienter) OpponentPlacement(positions []core.Coordinate) {
	if o.observer == nil {
		return
	}
	if o.player == 0 {
		o.observer.OpponentPlacement(positions)
		return
	}

	out := make([]core.Coordinate, len(positions))
	for i, c := range positions {
		out[i] = c.Reversed()
	}
	o.observer.OpponentPlacement(out)
}

// OpponentAction forwards a physical-frame view and action in the policy's frame
func (o *Orienter) OpponentAction(view *State, action core.Action) {
	if o.observer == nil {
		return
	}
	if o.player == 0 {
		o.observer.OpponentAction(view, action)
		return
	}
	o.observer.OpponentAction(view.Reversed(), action.Reversed())
}
