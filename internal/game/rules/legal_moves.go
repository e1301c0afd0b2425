package rules

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// LegalMoveCalculator enumerates legal actions, reusing one buffer between calls.
// It is not safe for concurrent use; each policy owns its own.
type LegalMoveCalculator struct {
	buf []core.Action
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{buf: make([]core.Action, 0, 64)}
}

// LegalActions returns every legal action for pieces. The slice is only valid until the next call.
func (lmc *LegalMoveCalculator) LegalActions(pieces []core.Piece, own, enemy core.Bitmap) []core.Action {
	lmc.buf = core.AllPossibleMoves(pieces, own, enemy, lmc.buf[:0])
	return lmc.buf
}
