// Package protocol speaks the newline-delimited JSON protocol of an external game judge.
// Field names on the wire are PascalCase.
package protocol

import "github.com/mitchelldurbincs/StrategoEngine/internal/game/core"

// BotStart is the first line a bot prints to announce itself
const BotStart = "bot-start"

// Position is a board square on the wire
type Position struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

// GameInit tells the bot which seat it plays
type GameInit struct {
	You int `json:"You"`
}

// Move is both the bot's move command and the judge's record of the last move
type Move struct {
	From Position `json:"From"`
	To   Position `json:"To"`
}

// Fighter is one side of a reported battle
type Fighter struct {
	Player int       `json:"Player"`
	Rank   core.Rank `json:"Rank"`
}

// BattleResult reports a battle. A nil Winner means both pieces died.
type BattleResult struct {
	Winner   *int     `json:"Winner"`
	Attacker Fighter  `json:"Attacker"`
	Defender Fighter  `json:"Defender"`
	Position Position `json:"Position"`
}

// Tile is one square of a snapshot. Rank is nil or unparseable for hidden pieces.
type Tile struct {
	Rank       *string  `json:"Rank"`
	Owner      *int     `json:"Owner"`
	IsWater    bool     `json:"IsWater"`
	Coordinate Position `json:"Coordinate"`
}

// GameState is the judge's snapshot sent after every turn
type GameState struct {
	ActivePlayer int           `json:"ActivePlayer"`
	TurnNumber   int           `json:"TurnNumber"`
	Board        []Tile        `json:"Board"`
	LastMove     *Move         `json:"LastMove"`
	BattleResult *BattleResult `json:"BattleResult"`
}

// PiecePlacement is one entry of SetupBoard
type PiecePlacement struct {
	Rank     core.Rank `json:"Rank"`
	Position Position  `json:"Position"`
}

// SetupBoard carries the bot's initial placement
type SetupBoard struct {
	Pieces []PiecePlacement `json:"Pieces"`
}
