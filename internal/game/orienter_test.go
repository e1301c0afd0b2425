package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/testutil"
)

func TestOrienterPlacements(t *testing.T) {
	tests := []struct {
		player int
		want   core.Coordinate
	}{
		{0, at(4, 3)},
		{1, at(5, 6)},
	}

	for _, tt := range tests {
		policy := &testutil.ScriptedPolicy{Placements: []game.Placement{place(core.Scout, 4, 3)}}
		o := game.NewOrienter(policy, tt.player)

		got := o.InitialPlacements([]core.Rank{core.Scout})
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].Pos)
		assert.Equal(t, core.Scout, got[0].Rank)
		assert.Equal(t, tt.player, o.Player())
		assert.Same(t, policy, o.Policy())
	}
}

func TestOrienterActionForSecondPlayer(t *testing.T) {
	s := testutil.NewStandardState(t)
	turn, _ := s.ResolveAction(core.NewAction(1, 3, 1, 4))
	s.ApplyTurn(turn)
	require.Equal(t, 1, s.CurrentPlayer)

	policy := &testutil.ScriptedPolicy{Actions: []core.Action{core.NewAction(9, 3, 9, 4)}}
	o := game.NewOrienter(policy, 1)

	action := o.Action(s.View(1))
	assert.Equal(t, core.NewAction(0, 6, 0, 5), action)
	assert.NoError(t, s.ValidateAction(action))

	require.Len(t, policy.Views, 1)
	view := policy.Views[0]
	assert.Equal(t, 0, view.CurrentPlayer)
	assert.Equal(t, testutil.StandardPlacements()[0].Pos, view.Pieces[0][0].Pos)
	assert.NotEqual(t, core.Unknown, view.Pieces[0][0].Rank)
	for _, p := range view.Pieces[1] {
		assert.Equal(t, core.Unknown, p.Rank)
	}
}

func TestOrienterObserver(t *testing.T) {
	policy := &testutil.ScriptedPolicy{}
	o := game.NewOrienter(policy, 1)

	o.OpponentPlacement([]core.Coordinate{at(0, 0), at(4, 3)})
	assert.Equal(t, []core.Coordinate{at(9, 9), at(5, 6)}, policy.OpponentPositions)

	o.OpponentAction(testutil.NewStandardState(t), core.NewAction(4, 3, 4, 4))
	assert.Equal(t, []core.Action{core.NewAction(5, 6, 5, 5)}, policy.OpponentActions)

	// Policies without the Observer methods are simply not notified
	plain := game.NewOrienter(game.PolicyFunc{}, 0)
	assert.NotPanics(t, func() {
		plain.OpponentPlacement([]core.Coordinate{at(0, 0)})
		plain.OpponentAction(nil, core.Action{})
	})
}
