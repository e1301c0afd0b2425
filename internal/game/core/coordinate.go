package core

import "fmt"

const (
	// BoardSize is the width and height of the Stratego board
	BoardSize = 10
	// NumCells is the number of logical cells on the board
	NumCells = BoardSize * BoardSize
	// HomeRows is the number of rows each player may place pieces in, counted from their own side
	HomeRows = 4
)

// Coordinate represents a position on the game board
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a board index using row-major ordering
func FromIndex(idx int) Coordinate {
	return Coordinate{
		X: idx % BoardSize,
		Y: idx / BoardSize,
	}
}

// InBounds checks if the coordinate lies on the 10x10 grid, ignoring lakes
func (c Coordinate) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// IsLake reports whether the coordinate lies inside one of the two 2x2 lakes
func (c Coordinate) IsLake() bool {
	if c.Y != 4 && c.Y != 5 {
		return false
	}
	return c.X == 2 || c.X == 3 || c.X == 6 || c.X == 7
}

// IsValid checks if a piece may stand on the coordinate: on the board and not in a lake
func (c Coordinate) IsValid() bool {
	return c.InBounds() && !c.IsLake()
}

// IsHomeRow reports whether the coordinate is within the first HomeRows rows of player 0's side.
// Players always place from their own perspective, so this applies to both sides before orientation.
func (c Coordinate) IsHomeRow() bool {
	return c.InBounds() && c.Y < HomeRows
}

// ToIndex converts the coordinate to a bitmap index using row-major ordering
func (c Coordinate) ToIndex() int {
	return c.Y*BoardSize + c.X
}

// Reversed rotates the coordinate 180 degrees around the board centre
func (c Coordinate) Reversed() Coordinate {
	return Coordinate{
		X: BoardSize - 1 - c.X,
		Y: BoardSize - 1 - c.Y,
	}
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dx := c.X - other.X
	dy := c.Y - other.Y

	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Neighbors returns the four orthogonal neighbors in Up, Right, Down, Left order.
// The result may contain coordinates that are off the board or in a lake.
func (c Coordinate) Neighbors() [4]Coordinate {
	return [4]Coordinate{
		c.Move(Up),
		c.Move(Right),
		c.Move(Down),
		c.Move(Left),
	}
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents a cardinal direction. Up decreases Y.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// AllDirections lists the directions in the fixed order used by move generation
var AllDirections = [4]Direction{Up, Right, Down, Left}

// directionVectors provides coordinate offsets for each direction
var directionVectors = [4]Coordinate{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if direction < Up || direction > Left {
		return c
	}
	return c.Add(directionVectors[direction])
}
