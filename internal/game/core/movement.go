package core

// ScoutMaxSteps counts how far a piece at pos can slide in direction.
// The walk stops before an own piece and on (inclusive) the first enemy piece.
func ScoutMaxSteps(pos Coordinate, direction Direction, own, enemy Bitmap) int {
	steps := 0
	to := pos.Move(direction)

	for to.IsValid() {
		idx := to.ToIndex()
		if own.Get(idx) {
			break
		}

		steps++

		if enemy.Get(idx) {
			break
		}

		to = to.Move(direction)
	}

	return steps
}

// canStepTo reports whether a single-step piece may enter c
func canStepTo(c Coordinate, own Bitmap) bool {
	return c.IsValid() && !own.Get(c.ToIndex())
}

// HasPossibleMove reports whether any movable piece has at least one legal destination
func HasPossibleMove(pieces []Piece, own, enemy Bitmap) bool {
	for i := range pieces {
		p := &pieces[i]
		if !p.IsMovable() {
			continue
		}

		if p.Rank == Scout {
			for _, dir := range AllDirections {
				if ScoutMaxSteps(p.Pos, dir, own, enemy) > 0 {
					return true
				}
			}
			continue
		}

		for _, n := range p.Pos.Neighbors() {
			if canStepTo(n, own) {
				return true
			}
		}
	}

	return false
}

// AllPossibleMoves appends every legal action for pieces to buf and returns it.
// Pieces are visited in slice order, directions in AllDirections order.
func AllPossibleMoves(pieces []Piece, own, enemy Bitmap, buf []Action) []Action {
	for i := range pieces {
		p := &pieces[i]
		if !p.IsMovable() {
			continue
		}

		if p.Rank == Scout {
			for _, dir := range AllDirections {
				steps := ScoutMaxSteps(p.Pos, dir, own, enemy)
				to := p.Pos
				for s := 0; s < steps; s++ {
					to = to.Move(dir)
					buf = append(buf, Action{From: p.Pos, To: to})
				}
			}
			continue
		}

		for _, n := range p.Pos.Neighbors() {
			if canStepTo(n, own) {
				buf = append(buf, Action{From: p.Pos, To: n})
			}
		}
	}

	return buf
}
