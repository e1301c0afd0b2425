package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// StandardPlacements places core.StartingRanks in the owner's frame: Flag and Bomb in the back
// corner, everything movable on row 3.
func StandardPlacements() []game.Placement {
	return []game.Placement{
		{Rank: core.Flag, Pos: core.Coordinate{X: 0, Y: 0}},
		{Rank: core.Bomb, Pos: core.Coordinate{X: 1, Y: 0}},
		{Rank: core.Spy, Pos: core.Coordinate{X: 0, Y: 3}},
		{Rank: core.Scout, Pos: core.Coordinate{X: 1, Y: 3}},
		{Rank: core.Scout, Pos: core.Coordinate{X: 4, Y: 3}},
		{Rank: core.Miner, Pos: core.Coordinate{X: 5, Y: 3}},
		{Rank: core.General, Pos: core.Coordinate{X: 8, Y: 3}},
		{Rank: core.Marshal, Pos: core.Coordinate{X: 9, Y: 3}},
	}
}

// Physical converts own-frame placements of player into the physical frame
func Physical(player int, placements []game.Placement) []game.Placement {
	out := make([]game.Placement, len(placements))
	for i, p := range placements {
		if player == 1 {
			p.Pos = p.Pos.Reversed()
		}
		out[i] = p
	}
	return out
}

// NewStandardState builds a starting state with StandardPlacements for both players
func NewStandardState(t *testing.T) *game.State {
	t.Helper()
	s, err := game.NewState([2][]game.Placement{
		Physical(0, StandardPlacements()),
		Physical(1, StandardPlacements()),
	})
	if err != nil {
		t.Fatalf("standard state: %v", err)
	}
	return s
}

// NewState builds a state from physical-frame placements and fails the test on error
func NewState(t *testing.T, p0, p1 []game.Placement) *game.State {
	t.Helper()
	s, err := game.NewState([2][]game.Placement{p0, p1})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s
}

// ScriptedPolicy places Placements and plays Actions in order, both in its own frame.
// Once the script runs out it plays the first legal action.
type ScriptedPolicy struct {
	Placements []game.Placement
	Actions    []core.Action

	Views             []*game.State
	OpponentPositions []core.Coordinate
	OpponentActions   []core.Action
	next              int
}

func (p *ScriptedPolicy) InitialPlacements([]core.Rank) []game.Placement {
	if p.Placements == nil {
		return StandardPlacements()
	}
	return p.Placements
}

func (p *ScriptedPolicy) Action(view *game.State) core.Action {
	p.Views = append(p.Views, view)
	if p.next < len(p.Actions) {
		a := p.Actions[p.next]
		p.next++
		return a
	}
	return view.LegalActions(nil)[0]
}

func (p *ScriptedPolicy) OpponentPlacement(positions []core.Coordinate) {
	p.OpponentPositions = positions
}

func (p *ScriptedPolicy) OpponentAction(_ *game.State, action core.Action) {
	p.OpponentActions = append(p.OpponentActions, action)
}
