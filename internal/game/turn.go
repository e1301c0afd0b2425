package game

import (
	"fmt"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
)

// Turn is one applied action of one player plus the battle it caused, if any
type Turn struct {
	Player int
	Action core.Action
	Battle *core.Battle
}

// Reversed returns the turn in the opposite frame. Battle fields are indexed by player id and stay as they are.
func (t Turn) Reversed() Turn {
	t.Action = t.Action.Reversed()
	return t
}

func (t Turn) String() string {
	if t.Battle == nil {
		return fmt.Sprintf("player %d %s", t.Player, t.Action)
	}
	return fmt.Sprintf("player %d %s (%s vs %s, winner %d)",
		t.Player, t.Action, t.Battle.Ranks[t.Player], t.Battle.Ranks[1-t.Player], t.Battle.Winner())
}
