package core

import "fmt"

// Casualties resolves a fight between a defending and an attacking rank.
// Flag as defender and immovable or hidden attackers are caller bugs and panic:
// flag captures end the game before combat is resolved.
func Casualties(defender, attacker Rank) (defenderDies, attackerDies bool) {
	switch {
	case defender == Flag || defender == Unknown || !attacker.IsMovable() || attacker == Unknown:
		panic(fmt.Sprintf("invalid battle: %s attacking %s", attacker, defender))
	case defender == Marshal && attacker == Spy:
		return true, false
	case defender == Bomb && attacker == Miner:
		return true, false
	case defender == Bomb:
		return false, true
	}

	return attacker >= defender, defender >= attacker
}

// Battle is the result of one combat, indexed by player id
type Battle struct {
	Ranks [2]Rank
	Died  [2]bool
}

// ResolveBattle builds the Battle for attacker (a player id) attacking with atk into def
func ResolveBattle(attacker int, atk, def Rank) Battle {
	defender := 1 - attacker
	defDies, atkDies := Casualties(def, atk)

	var b Battle
	b.Ranks[attacker], b.Ranks[defender] = atk, def
	b.Died[attacker], b.Died[defender] = atkDies, defDies
	return b
}

// Winner returns the surviving player id, or -1 when both pieces died
func (b Battle) Winner() int {
	switch {
	case b.Died[0] && b.Died[1]:
		return -1
	case b.Died[0]:
		return 1
	default:
		return 0
	}
}
