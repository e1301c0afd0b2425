package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// ANSI color codes for board rendering
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorGray  = "\033[90m"
)

const (
	emptySymbol   = "·"
	lakeSymbol    = "~"
	playerSymbols = "AB"
)

var playerColors = [2]string{ColorRed, ColorBlue}

// Render draws the board in the physical frame. viewer is 0 or 1 to hide that player's
// unrevealed opponent ranks, or -1 to show everything. colored adds ANSI colors.
func (s *State) Render(viewer int, colored bool) string {
	var owner [core.NumCells]int
	var ranks [core.NumCells]core.Rank
	for i := range owner {
		owner[i] = -1
	}
	for p := 0; p < 2; p++ {
		for _, piece := range s.Pieces[p] {
			idx := piece.Pos.ToIndex()
			owner[idx] = p
			ranks[idx] = piece.Rank
			if viewer >= 0 && p != viewer && !piece.Revealed {
				ranks[idx] = core.Unknown
			}
		}
	}

	var sb strings.Builder
	sb.Grow((core.BoardSize*3 + 4) * (core.BoardSize + 3))

	sb.WriteString("   ")
	for x := 0; x < core.BoardSize; x++ {
		fmt.Fprintf(&sb, "%2d ", x)
	}
	sb.WriteString("\n")

	for y := 0; y < core.BoardSize; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < core.BoardSize; x++ {
			c := core.Coordinate{X: x, Y: y}
			idx := c.ToIndex()

			switch {
			case c.IsLake():
				writeCell(&sb, colored, ColorCyan, " "+lakeSymbol)
			case owner[idx] < 0:
				writeCell(&sb, colored, ColorGray, " "+emptySymbol)
			default:
				p := owner[idx]
				writeCell(&sb, colored, playerColors[p], string(playerSymbols[p])+ranks[idx].Symbol())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nturn %d, player %d to move\n", s.Turn, s.CurrentPlayer)
	return sb.String()
}

func writeCell(sb *strings.Builder, colored bool, color, symbol string) {
	if !colored {
		sb.WriteString(symbol)
		return
	}
	sb.WriteString(color)
	sb.WriteString(symbol)
	sb.WriteString(ColorReset)
}

// String renders the full board without colors
func (s *State) String() string {
	return s.Render(-1, false)
}
