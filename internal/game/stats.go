package game

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// PlayerStats summarizes one side's remaining material
type PlayerStats struct {
	Pieces   int
	Movable  int
	Revealed int
	Moved    int
	HasFlag  bool
}

// Stats counts the remaining material of both players
func (s *State) Stats() [2]PlayerStats {
	var stats [2]PlayerStats
	for p := range s.Pieces {
		st := &stats[p]
		for i := range s.Pieces[p] {
			piece := &s.Pieces[p][i]
			st.Pieces++
			if piece.IsMovable() {
				st.Movable++
			}
			if piece.Revealed {
				st.Revealed++
			}
			if piece.HasMoved {
				st.Moved++
			}
			if piece.Rank == core.Flag {
				st.HasFlag = true
			}
		}
	}
	return stats
}
