package game

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// Policy chooses placements and moves for one side. A policy always sees the board from its own
// side: its pieces are Pieces[0], its home rows are 0-3 and it is CurrentPlayer 0.
type Policy interface {
	// InitialPlacements returns one placement per rank, on distinct valid squares of rows 0-3
	InitialPlacements(ranks []core.Rank) []Placement
	// Action returns a legal action for Pieces[0]. At least one legal action exists.
	Action(view *State) core.Action
}

// Observer is implemented by policies that want to track what the opponent does
type Observer interface {
	// OpponentPlacement receives the squares the opponent placed pieces on
	OpponentPlacement(positions []core.Coordinate)
	// OpponentAction receives the opponent's last action and the view after it was applied
	OpponentAction(view *State, action core.Action)
}

// PolicyFunc adapts a function to the move half of Policy. Placement uses Placements.
type PolicyFunc struct {
	Placements []Placement
	Func       func(view *State) core.Action
}

func (p PolicyFunc) InitialPlacements([]core.Rank) []Placement { return p.Placements }
func (p PolicyFunc) Action(view *State) core.Action            { return p.Func(view) }
