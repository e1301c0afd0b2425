package core

import "fmt"

// Action moves the piece standing on From to To
type Action struct {
	From Coordinate
	To   Coordinate
}

// NewAction creates an action from raw coordinates
func NewAction(fromX, fromY, toX, toY int) Action {
	return Action{
		From: Coordinate{X: fromX, Y: fromY},
		To:   Coordinate{X: toX, Y: toY},
	}
}

// Distance returns the Manhattan distance covered by the action
func (a Action) Distance() int {
	return a.From.DistanceTo(a.To)
}

// IsStraight reports whether the action moves along a single axis
func (a Action) IsStraight() bool {
	return a.From.X == a.To.X || a.From.Y == a.To.Y
}

// Direction returns the axis-aligned direction of the action.
// The result is only meaningful when IsStraight is true and the action has a non-zero distance.
func (a Action) Direction() Direction {
	switch {
	case a.From.X > a.To.X:
		return Left
	case a.From.X < a.To.X:
		return Right
	case a.From.Y < a.To.Y:
		return Down
	default:
		return Up
	}
}

// Reversed returns the same action seen from the opposite side of the board
func (a Action) Reversed() Action {
	return Action{
		From: a.From.Reversed(),
		To:   a.To.Reversed(),
	}
}

// String returns a readable representation of the action
func (a Action) String() string {
	return fmt.Sprintf("%s->%s", a.From, a.To)
}
