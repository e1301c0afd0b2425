package game

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// View returns what player is allowed to see: a copy of the state in the physical frame where
// every opponent piece that was never revealed has rank Unknown.
func (s *State) View(player int) *State {
	v := s.Clone()
	opp := v.Pieces[1-player]
	for i := range opp {
		if !opp[i].Revealed {
			opp[i].Rank = core.Unknown
		}
	}
	return v
}

// OpponentPositions lists where player's opponent has pieces, in the physical frame
func (s *State) OpponentPositions(player int) []core.Coordinate {
	opp := s.Pieces[1-player]
	out := make([]core.Coordinate, len(opp))
	for i, p := range opp {
		out[i] = p.Pos
	}
	return out
}
