package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestNewGenerator(t *testing.T) {
	rng := newTestRNG()
	g := NewGenerator(DefaultPlacementConfig(), rng)

	require.NotNil(t, g)
	assert.Equal(t, core.HomeRows, g.config.Rows)
	assert.Same(t, rng, g.rng)

	clamped := NewGenerator(PlacementConfig{Rows: 9}, rng)
	assert.Equal(t, core.HomeRows, clamped.config.Rows)
}

func TestSquares(t *testing.T) {
	squares := Squares(core.HomeRows)
	assert.Len(t, squares, 40)
	assert.Equal(t, core.Coordinate{X: 0, Y: 0}, squares[0])
	assert.Equal(t, core.Coordinate{X: 0, Y: 1}, squares[1], "column-major order")

	// Reaching into the lake rows skips the lakes
	assert.Len(t, Squares(5), 46)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		config PlacementConfig
		ranks  []core.Rank
	}{
		{"StartingRanks", DefaultPlacementConfig(), core.StartingRanks},
		{"ProtectedFlag", PlacementConfig{Rows: 4, ProtectFlag: true}, core.StartingRanks},
		{"FlagOnly", PlacementConfig{ProtectFlag: true}, []core.Rank{core.Flag}},
		{"SingleRow", PlacementConfig{Rows: 1}, []core.Rank{core.Flag, core.Scout, core.Bomb}},
		{"FullHomeArea", DefaultPlacementConfig(), fullArmy()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				g := NewGenerator(tt.config, rand.New(rand.NewSource(seed)))
				placements, err := g.Generate(tt.ranks)
				require.NoError(t, err)
				require.Len(t, placements, len(tt.ranks))

				for i, p := range placements {
					assert.Equal(t, tt.ranks[i], p.Rank)
					assert.Less(t, p.Pos.Y, g.config.Rows)
					if tt.config.ProtectFlag && p.Rank == core.Flag {
						assert.Equal(t, 0, p.Pos.Y)
					}
				}
				assert.NoError(t, game.ValidatePlacements(0, placements, tt.ranks))
			}
		})
	}
}

func fullArmy() []core.Rank {
	ranks := make([]core.Rank, 40)
	for i := range ranks {
		ranks[i] = core.Scout
	}
	ranks[0] = core.Flag
	return ranks
}

func TestGenerateTooManyPieces(t *testing.T) {
	g := NewGenerator(PlacementConfig{Rows: 1}, newTestRNG())
	_, err := g.Generate(fullArmy())
	assert.ErrorIs(t, err, core.ErrInvalidPlacement)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewGenerator(DefaultPlacementConfig(), newTestRNG()).Generate(core.StartingRanks)
	require.NoError(t, err)
	b, err := NewGenerator(DefaultPlacementConfig(), newTestRNG()).Generate(core.StartingRanks)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
