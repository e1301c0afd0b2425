package core

// Piece is the runtime state of one piece owned by a player.
// Revealed never goes back to false once set.
type Piece struct {
	Rank     Rank
	Pos      Coordinate
	HasMoved bool
	Revealed bool
}

// IsMovable reports whether the piece's rank allows it to move
func (p *Piece) IsMovable() bool { return p.Rank.IsMovable() }

// FindPiece returns the index of the piece standing on pos, or -1
func FindPiece(pieces []Piece, pos Coordinate) int {
	for i := range pieces {
		if pieces[i].Pos == pos {
			return i
		}
	}
	return -1
}
