// Package policy holds reference move-selection policies used by the arena and the bot binary.
package policy

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
)

const (
	NameRandom     = "random"
	NameAggressive = "aggressive"
)

// Config configures a policy instance
type Config struct {
	Seed      uint64
	Placement mapgen.PlacementConfig
}

// Named is a policy that reports its registry name
type Named interface {
	game.Policy
	Name() string
}

var registry = map[string]func(Config) Named{
	NameRandom:     func(cfg Config) Named { return NewRandomPolicy(cfg) },
	NameAggressive: func(cfg Config) Named { return NewAggressivePolicy(cfg) },
}

// New builds the policy registered under name
func New(name string, cfg Config) (Named, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (known: %v)", name, Names())
	}
	return factory(cfg), nil
}

// Names lists the registered policy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
