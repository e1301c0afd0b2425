package policy

import (
	"github.com/mitchelldurbincs/StrategoEngine/internal/common"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/rules"
	"golang.org/x/exp/rand"
)

// RandomPolicy places pieces at random on its home rows and plays a uniformly random legal action
type RandomPolicy struct {
	rng       *rand.Rand
	generator *mapgen.Generator
	legal     *rules.LegalMoveCalculator
}

// NewRandomPolicy creates a random policy seeded from cfg
func NewRandomPolicy(cfg Config) *RandomPolicy {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &RandomPolicy{
		rng:       rng,
		generator: mapgen.NewGenerator(cfg.Placement, rng),
		legal:     rules.NewLegalMoveCalculator(),
	}
}

func (p *RandomPolicy) Name() string { return NameRandom }

// InitialPlacements implements game.Policy
func (p *RandomPolicy) InitialPlacements(ranks []core.Rank) []game.Placement {
	return mustPlace(p.generator, ranks)
}

// Action implements game.Policy
func (p *RandomPolicy) Action(view *game.State) core.Action {
	actions := p.legal.LegalActions(view.Pieces[0], view.Bitmaps[0], view.Bitmaps[1])
	action, ok := common.ReservoirSampleOne(p.rng, actions)
	if !ok {
		panic("random policy asked to move without a legal action")
	}
	return action
}

// mustPlace generates placements. Asking for more pieces than the home rows hold is a caller bug.
func mustPlace(g *mapgen.Generator, ranks []core.Rank) []game.Placement {
	placements, err := g.Generate(ranks)
	if err != nil {
		panic(err)
	}
	return placements
}
