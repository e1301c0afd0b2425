package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		playerID int
		action   Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:     "nil error returns nil",
			playerID: 1,
			action:   NewAction(0, 0, 1, 0),
			err:      nil,
			isNil:    true,
		},
		{
			name:     "invalid destination",
			playerID: 1,
			action:   NewAction(5, 3, 5, 4),
			err:      ErrInvalidDestination,
			expected: "player 1: move from (5,3) to (5,4): to position is not a valid map position",
		},
		{
			name:     "no friendly piece",
			playerID: 0,
			action:   NewAction(9, 9, 9, 8),
			err:      ErrNoFriendlyPiece,
			expected: "player 0: move from (9,9) to (9,8): no friendly piece on from position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapActionError(tt.playerID, tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}

			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))

			var actionErr *ActionError
			require.True(t, errors.As(wrapped, &actionErr))
			assert.Equal(t, tt.action, actionErr.Action)
		})
	}
}

func TestWrapGameStateError(t *testing.T) {
	tests := []struct {
		name     string
		turn     int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{
			name:  "nil error returns nil",
			turn:  50,
			phase: "in_progress",
			isNil: true,
		},
		{
			name:     "game over",
			turn:     100,
			phase:    "action",
			err:      ErrGameOver,
			expected: "game turn 100 [action]: game is over",
		},
		{
			name:     "setup failure",
			turn:     0,
			phase:    "setup",
			err:      fmt.Errorf("placement rejected"),
			expected: "game turn 0 [setup]: placement rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapGameStateError(tt.turn, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}

			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapPlayerError(t *testing.T) {
	tests := []struct {
		name      string
		playerID  int
		operation string
		err       error
		expected  string
		isNil     bool
	}{
		{
			name:      "nil error returns nil",
			playerID:  1,
			operation: "move validation",
			isNil:     true,
		},
		{
			name:      "move validation",
			playerID:  1,
			operation: "move validation",
			err:       ErrPieceNotMovable,
			expected:  "player 1 move validation: friendly piece is not movable",
		},
		{
			name:      "placement",
			playerID:  0,
			operation: "initial placement",
			err:       ErrInvalidPlacement,
			expected:  "player 0 initial placement: invalid initial placement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapPlayerError(tt.playerID, tt.operation, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}

			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestGameError(t *testing.T) {
	t.Run("with player ID", func(t *testing.T) {
		err := NewGameError(150, 1, "apply turn", ErrDestinationOccupied)
		assert.Equal(t, "turn 150: player 1 apply turn: to position occupied by friendly piece", err.Error())
		assert.True(t, errors.Is(err, ErrDestinationOccupied))
	})

	t.Run("without player ID", func(t *testing.T) {
		err := NewGameError(200, -1, "win condition check", ErrGameOver)
		assert.Equal(t, "turn 200: win condition check: game is over", err.Error())
		assert.True(t, errors.Is(err, ErrGameOver))
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		gameErr := NewGameError(50, 0, "policy action", fmt.Errorf("timeout"))

		var extracted *GameError
		require.True(t, errors.As(error(gameErr), &extracted))
		assert.Equal(t, 50, extracted.Turn)
		assert.Equal(t, 0, extracted.PlayerID)
		assert.Equal(t, "policy action", extracted.Operation)
	})
}
