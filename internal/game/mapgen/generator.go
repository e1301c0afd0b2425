package mapgen

import (
	"fmt"

	"github.com/mitchelldurbincs/StrategoEngine/internal/common"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"golang.org/x/exp/rand"
)

// PlacementConfig holds configuration for initial placement generation
type PlacementConfig struct {
	Rows        int  // home rows to fill, counted from the owner's side
	ProtectFlag bool // put the Flag on row 0
}

// DefaultPlacementConfig returns a sensible default configuration
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		Rows: core.HomeRows,
	}
}

// Generator produces initial placements with a deterministic RNG
type Generator struct {
	config PlacementConfig
	rng    *rand.Rand
}

// NewGenerator creates a new placement generator
func NewGenerator(config PlacementConfig, rng *rand.Rand) *Generator {
	if config.Rows <= 0 || config.Rows > core.HomeRows {
		config.Rows = core.HomeRows
	}
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Squares lists the valid squares of the first rows rows, column by column
func Squares(rows int) []core.Coordinate {
	out := make([]core.Coordinate, 0, core.BoardSize*rows)
	for x := 0; x < core.BoardSize; x++ {
		for y := 0; y < rows; y++ {
			if c := (core.Coordinate{X: x, Y: y}); c.IsValid() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Generate places ranks on distinct random squares of the owner's home rows, in the owner's
// frame. The i-th placement always carries ranks[i].
func (g *Generator) Generate(ranks []core.Rank) ([]game.Placement, error) {
	squares := Squares(g.config.Rows)
	if len(ranks) > len(squares) {
		return nil, fmt.Errorf("%w: %d pieces do not fit on %d squares",
			core.ErrInvalidPlacement, len(ranks), len(squares))
	}

	flagIdx := -1
	if g.config.ProtectFlag {
		for i, r := range ranks {
			if r == core.Flag {
				flagIdx = i
				break
			}
		}
	}

	if flagIdx < 0 {
		positions := common.ReservoirSample(g.rng, squares, len(ranks))
		return zip(ranks, positions), nil
	}

	backRow := Squares(1)
	flagPos, _ := common.ReservoirSampleOne(g.rng, backRow)

	rest := make([]core.Coordinate, 0, len(squares)-1)
	for _, c := range squares {
		if c != flagPos {
			rest = append(rest, c)
		}
	}

	others := make([]core.Rank, 0, len(ranks)-1)
	others = append(others, ranks[:flagIdx]...)
	others = append(others, ranks[flagIdx+1:]...)
	positions := common.ReservoirSample(g.rng, rest, len(others))

	// Splice the flag square back at the flag's index
	positions = append(positions[:flagIdx], append([]core.Coordinate{flagPos}, positions[flagIdx:]...)...)
	return zip(ranks, positions), nil
}

func zip(ranks []core.Rank, positions []core.Coordinate) []game.Placement {
	out := make([]game.Placement, len(ranks))
	for i, r := range ranks {
		out[i] = game.Placement{Rank: r, Pos: positions[i]}
	}
	return out
}
