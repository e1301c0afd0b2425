package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestDecodeGameState(t *testing.T) {
	raw := `{"ActivePlayer":1,"TurnNumber":7,"Board":[` +
		`{"Rank":"Marshal","Owner":0,"IsWater":false,"Coordinate":{"X":1,"Y":2}},` +
		`{"Rank":null,"Owner":1,"IsWater":false,"Coordinate":{"X":5,"Y":6}},` +
		`{"Rank":null,"Owner":null,"IsWater":true,"Coordinate":{"X":2,"Y":4}}],` +
		`"LastMove":{"From":{"X":1,"Y":3},"To":{"X":1,"Y":2}},` +
		`"BattleResult":{"Winner":null,"Attacker":{"Player":0,"Rank":"Scout"},` +
		`"Defender":{"Player":1,"Rank":"Scout"},"Position":{"X":1,"Y":2}}}`

	var gs GameState
	require.NoError(t, json.Unmarshal([]byte(raw), &gs))

	assert.Equal(t, 1, gs.ActivePlayer)
	assert.Equal(t, 7, gs.TurnNumber)
	require.Len(t, gs.Board, 3)
	assert.True(t, gs.Board[2].IsWater)
	assert.Nil(t, gs.Board[2].Owner)
	require.NotNil(t, gs.LastMove)
	assert.Equal(t, core.NewAction(1, 3, 1, 2), gs.LastMove.Action())
	require.NotNil(t, gs.BattleResult)
	assert.Nil(t, gs.BattleResult.Winner)
	assert.Equal(t, core.Scout, gs.BattleResult.Defender.Rank)
}

func TestEncodeCommands(t *testing.T) {
	setup := NewSetupBoard([]game.Placement{{Rank: core.Flag, Pos: core.Coordinate{X: 9, Y: 9}}})
	data, err := json.Marshal(setup)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Pieces":[{"Rank":"Flag","Position":{"X":9,"Y":9}}]}`, string(data))

	data, err = json.Marshal(FromAction(core.NewAction(0, 6, 0, 5)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"From":{"X":0,"Y":6},"To":{"X":0,"Y":5}}`, string(data))
}

func TestBattleResult(t *testing.T) {
	tests := []struct {
		name    string
		result  BattleResult
		want    core.Battle
		wantErr error
	}{
		{
			name: "AttackerZeroWins",
			result: BattleResult{Winner: intp(0),
				Attacker: Fighter{Player: 0, Rank: core.Miner}, Defender: Fighter{Player: 1, Rank: core.Bomb}},
			want: core.Battle{Ranks: [2]core.Rank{core.Miner, core.Bomb}, Died: [2]bool{false, true}},
		},
		{
			name: "AttackerOneLoses",
			result: BattleResult{Winner: intp(0),
				Attacker: Fighter{Player: 1, Rank: core.Scout}, Defender: Fighter{Player: 0, Rank: core.General}},
			want: core.Battle{Ranks: [2]core.Rank{core.General, core.Scout}, Died: [2]bool{false, true}},
		},
		{
			name: "AttackerOneWins",
			result: BattleResult{Winner: intp(1),
				Attacker: Fighter{Player: 1, Rank: core.Spy}, Defender: Fighter{Player: 0, Rank: core.Marshal}},
			want: core.Battle{Ranks: [2]core.Rank{core.Marshal, core.Spy}, Died: [2]bool{true, false}},
		},
		{
			name: "BothDie",
			result: BattleResult{
				Attacker: Fighter{Player: 0, Rank: core.Major}, Defender: Fighter{Player: 1, Rank: core.Major}},
			want: core.Battle{Ranks: [2]core.Rank{core.Major, core.Major}, Died: [2]bool{true, true}},
		},
		{
			name: "BadWinner",
			result: BattleResult{Winner: intp(2),
				Attacker: Fighter{Player: 0, Rank: core.Major}, Defender: Fighter{Player: 1, Rank: core.Major}},
			wantErr: ErrInvalidWinner,
		},
		{
			name:    "BadAttacker",
			result:  BattleResult{Attacker: Fighter{Player: 3}},
			wantErr: ErrInvalidSeat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.result.Battle()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshotTurn(t *testing.T) {
	gs := GameState{ActivePlayer: 0, LastMove: &Move{From: Position{5, 6}, To: Position{5, 5}}}
	turn, err := gs.Turn()
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Player)
	assert.Equal(t, core.NewAction(5, 6, 5, 5), turn.Action)
	assert.Nil(t, turn.Battle)

	gs.BattleResult = &BattleResult{Winner: intp(1),
		Attacker: Fighter{Player: 1, Rank: core.Scout}, Defender: Fighter{Player: 0, Rank: core.Spy}}
	turn, err = gs.Turn()
	require.NoError(t, err)
	require.NotNil(t, turn.Battle)
	assert.Equal(t, 1, turn.Battle.Winner())

	_, err = (&GameState{ActivePlayer: 1}).Turn()
	assert.ErrorIs(t, err, ErrNoLastMove)
}

func TestNewStateFromSnapshot(t *testing.T) {
	gs := &GameState{
		ActivePlayer: 1,
		TurnNumber:   3,
		Board: []Tile{
			{Rank: strp("Flag"), Owner: intp(0), Coordinate: Position{0, 0}},
			{Rank: strp("Scout"), Owner: intp(0), Coordinate: Position{4, 3}},
			{Rank: nil, Owner: intp(1), Coordinate: Position{9, 9}},
			{Rank: strp("Dragon"), Owner: intp(1), Coordinate: Position{5, 6}},
			{Rank: strp("Miner"), Owner: intp(1), Coordinate: Position{1, 6}},
			{IsWater: true, Coordinate: Position{2, 4}},
			{Coordinate: Position{8, 8}},
		},
	}

	s, err := NewStateFromSnapshot(gs)
	require.NoError(t, err)
	require.NoError(t, s.CheckConsistency())

	assert.Equal(t, 1, s.CurrentPlayer)
	assert.Equal(t, 3, s.Turn)
	require.Len(t, s.Pieces[0], 2)
	require.Len(t, s.Pieces[1], 3)

	assert.Equal(t, core.Piece{Rank: core.Flag, Pos: core.Coordinate{X: 0, Y: 0}, Revealed: true}, s.Pieces[0][0])
	assert.Equal(t, core.Unknown, s.Pieces[1][0].Rank)
	assert.False(t, s.Pieces[1][0].Revealed)
	assert.Equal(t, core.Unknown, s.Pieces[1][1].Rank, "unparseable ranks are hidden")
	assert.Equal(t, core.Miner, s.Pieces[1][2].Rank)
	assert.True(t, s.Pieces[1][2].Revealed)
}

func TestNewStateFromSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		gs   GameState
	}{
		{"BadActivePlayer", GameState{ActivePlayer: 2}},
		{"BadOwner", GameState{Board: []Tile{{Owner: intp(5), Coordinate: Position{0, 0}}}}},
		{"PieceInLake", GameState{Board: []Tile{{Owner: intp(0), Coordinate: Position{2, 4}}}}},
		{"DuplicateTile", GameState{Board: []Tile{
			{Owner: intp(0), Coordinate: Position{0, 0}},
			{Owner: intp(1), Coordinate: Position{0, 0}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStateFromSnapshot(&tt.gs)
			assert.Error(t, err)
		})
	}
}
