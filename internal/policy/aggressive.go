package policy

import (
	"math"

	"github.com/mitchelldurbincs/StrategoEngine/internal/common"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/rules"
	"golang.org/x/exp/rand"
)

// AggressivePolicy places pieces at random and always moves to close in on the enemy: among the
// legal actions it keeps those whose destination is nearest to any enemy piece and picks one at random.
type AggressivePolicy struct {
	rng       *rand.Rand
	generator *mapgen.Generator
	legal     *rules.LegalMoveCalculator
	best      []core.Action
}

// NewAggressivePolicy creates an aggressive policy seeded from cfg
func NewAggressivePolicy(cfg Config) *AggressivePolicy {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &AggressivePolicy{
		rng:       rng,
		generator: mapgen.NewGenerator(cfg.Placement, rng),
		legal:     rules.NewLegalMoveCalculator(),
		best:      make([]core.Action, 0, 16),
	}
}

func (p *AggressivePolicy) Name() string { return NameAggressive }

// InitialPlacements implements game.Policy
func (p *AggressivePolicy) InitialPlacements(ranks []core.Rank) []game.Placement {
	return mustPlace(p.generator, ranks)
}

// Action implements game.Policy
func (p *AggressivePolicy) Action(view *game.State) core.Action {
	actions := p.legal.LegalActions(view.Pieces[0], view.Bitmaps[0], view.Bitmaps[1])

	p.best = p.best[:0]
	bestScore := math.MaxInt
	for _, a := range actions {
		score := nearestEnemy(a.To, view.Pieces[1])
		switch {
		case score < bestScore:
			bestScore = score
			p.best = append(p.best[:0], a)
		case score == bestScore:
			p.best = append(p.best, a)
		}
	}

	action, ok := common.ReservoirSampleOne(p.rng, p.best)
	if !ok {
		panic("aggressive policy asked to move without a legal action")
	}
	return action
}

// nearestEnemy returns the Manhattan distance from c to the closest enemy piece
func nearestEnemy(c core.Coordinate, enemies []core.Piece) int {
	nearest := math.MaxInt
	for i := range enemies {
		if d := c.DistanceTo(enemies[i].Pos); d < nearest {
			nearest = d
		}
	}
	return nearest
}
