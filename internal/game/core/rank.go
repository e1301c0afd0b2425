package core

import "fmt"

// Rank is the combat rank of a piece. Movable ranks are ordered by strength, weakest first.
type Rank int

const (
	Spy Rank = iota
	Scout
	Miner
	Sergeant
	Lieutenant
	Captain
	Major
	Colonel
	General
	Marshal

	Bomb
	Flag

	// Unknown hides the rank of an unrevealed enemy piece. It never takes part in combat.
	Unknown
)

// StartingRanks is the default set of pieces each player places before the game
var StartingRanks = []Rank{
	Spy,
	Scout,
	Scout,
	Miner,
	General,
	Marshal,
	Bomb,
	Flag,
}

var rankNames = [...]string{
	Spy:        "Spy",
	Scout:      "Scout",
	Miner:      "Miner",
	Sergeant:   "Sergeant",
	Lieutenant: "Lieutenant",
	Captain:    "Captain",
	Major:      "Major",
	Colonel:    "Colonel",
	General:    "General",
	Marshal:    "Marshal",
	Bomb:       "Bomb",
	Flag:       "Flag",
	Unknown:    "Unknown",
}

// IsMovable reports whether pieces of this rank can move. Bombs and flags never move.
func (r Rank) IsMovable() bool {
	return r != Bomb && r != Flag
}

// IsValid reports whether r is one of the declared ranks
func (r Rank) IsValid() bool {
	return r >= Spy && r <= Unknown
}

// String returns the rank name used on the wire
func (r Rank) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Symbol returns a one-character label for board rendering
func (r Rank) Symbol() string {
	switch r {
	case Spy:
		return "S"
	case Scout:
		return "2"
	case Miner:
		return "3"
	case Sergeant:
		return "4"
	case Lieutenant:
		return "5"
	case Captain:
		return "6"
	case Major:
		return "7"
	case Colonel:
		return "8"
	case General:
		return "9"
	case Marshal:
		return "M"
	case Bomb:
		return "B"
	case Flag:
		return "F"
	default:
		return "?"
	}
}

// ParseRank converts a rank name to a Rank
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return Rank(r), nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// MarshalText implements encoding.TextMarshaler
func (r Rank) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRank, int(r))
	}
	return []byte(rankNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rank) UnmarshalText(text []byte) error {
	parsed, err := ParseRank(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
