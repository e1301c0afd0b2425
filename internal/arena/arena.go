// Package arena plays many independent games between two policies and aggregates the results.
package arena

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/StrategoEngine/internal/game"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/core"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/events"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/StrategoEngine/internal/game/mapgen"
	"github.com/mitchelldurbincs/StrategoEngine/internal/monitoring"
	"github.com/mitchelldurbincs/StrategoEngine/internal/policy"
	"github.com/mitchelldurbincs/StrategoEngine/internal/storage"
)

// DefaultSeed is the arena.seed shipped in the default config
const DefaultSeed uint64 = 54989864

// ResultStore receives every finished game
type ResultStore interface {
	SaveResult(ctx context.Context, r *storage.GameResult) error
}

// Config holds configuration for an arena run
type Config struct {
	// Policies are registry names. Which one moves first is decided per game.
	Policies [2]string
	Games    int
	// Workers defaults to runtime.NumCPU()
	Workers         int
	Seed            uint64
	MaxTurns        int
	ValidateActions bool
	StartingRanks   []core.Rank
	Placement       mapgen.PlacementConfig
	// ProgressInterval <= 0 disables progress logging
	ProgressInterval time.Duration
	// LogGameEvents logs each game's start and end at debug level
	LogGameEvents bool
	Logger        zerolog.Logger
	Store         ResultStore
}

// Arena runs a batch of games
type Arena struct {
	config Config
	logger zerolog.Logger
}

// match is one scheduled game. slots[seat] is the index into Config.Policies playing that seat.
type match struct {
	index int
	seed  uint64
	slots [2]int
	seeds [2]uint64
}

// New validates cfg and fills in defaults
func New(cfg Config) (*Arena, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("arena needs at least one game, got %d", cfg.Games)
	}
	for _, name := range cfg.Policies {
		if _, err := policy.New(name, policy.Config{Placement: cfg.Placement}); err != nil {
			return nil, err
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Workers > cfg.Games {
		cfg.Workers = cfg.Games
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = game.DefaultMaxTurns
	}
	if len(cfg.StartingRanks) == 0 {
		cfg.StartingRanks = core.StartingRanks
	}

	return &Arena{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Arena").Logger(),
	}, nil
}

// Run plays every scheduled game and returns the aggregate. The summary only depends on
// the seed, never on the number of workers.
func (a *Arena) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	matches := a.schedule()

	a.logger.Info().
		Strs("policies", a.config.Policies[:]).
		Int("games", len(matches)).
		Int("workers", a.config.Workers).
		Uint64("seed", a.config.Seed).
		Msg("Starting arena")

	monitor := monitoring.NewMonitor(len(matches), a.config.ProgressInterval, a.logger)
	monitor.Start(ctx)
	defer monitor.Stop()

	results := make([]*storage.GameResult, len(matches))
	jobs := make(chan match)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, m := range matches {
			select {
			case jobs <- m:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < a.config.Workers; w++ {
		g.Go(func() error {
			for m := range jobs {
				result, _, err := a.play(gctx, m)
				monitor.GameFinished(err)
				if err != nil {
					return fmt.Errorf("game %d (seed %d): %w", m.index, m.seed, err)
				}
				results[m.index] = result

				if a.config.Store != nil {
					if err := a.config.Store.SaveResult(gctx, result); err != nil {
						return fmt.Errorf("store game %s: %w", result.ID, err)
					}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error().Err(err).Msg("Arena aborted")
		return nil, err
	}
	monitor.Sample()

	summary := NewSummary(a.config.Policies)
	for i, r := range results {
		summary.Add(r, matches[i].slots[0])
	}
	summary.Duration = time.Since(start)

	metrics := monitor.Metrics()
	a.logger.Info().
		Int("games", summary.Games).
		Int("timeouts", summary.Timeouts).
		Ints("wins", summary.Wins[:]).
		Float64("average_turns", summary.AverageTurns()).
		Int("peak_goroutines", metrics.Peak).
		Dur("duration", summary.Duration).
		Msg("Arena finished")

	return summary, nil
}

// Replay plays the single game scheduled under seed, as found in a stored result,
// and returns the final board along with the result
func (a *Arena) Replay(ctx context.Context, seed uint64) (*storage.GameResult, string, error) {
	result, coordinator, err := a.play(ctx, newMatch(0, seed))
	if err != nil {
		return nil, "", err
	}
	return result, coordinator.Board(-1), nil
}

// schedule derives one seed per game from the arena seed
func (a *Arena) schedule() []match {
	seeder := rand.New(rand.NewSource(a.config.Seed))
	matches := make([]match, a.config.Games)
	for i := range matches {
		matches[i] = newMatch(i, seeder.Uint64())
	}
	return matches
}

func newMatch(index int, seed uint64) match {
	rng := rand.New(rand.NewSource(seed))
	m := match{index: index, seed: seed, slots: [2]int{0, 1}}
	if rng.Uint64()&1 == 1 {
		m.slots = [2]int{1, 0}
	}
	m.seeds = [2]uint64{rng.Uint64(), rng.Uint64()}
	return m
}

func (a *Arena) play(ctx context.Context, m match) (*storage.GameResult, *game.Coordinator, error) {
	var (
		policies [2]game.Policy
		names    [2]string
	)
	for seat, slot := range m.slots {
		names[seat] = a.config.Policies[slot]
		p, err := policy.New(names[seat], policy.Config{Seed: m.seeds[seat], Placement: a.config.Placement})
		if err != nil {
			return nil, nil, err
		}
		policies[seat] = p
	}

	gameID := uuid.NewString()
	bus := events.NewEventBus(a.logger)
	if a.config.LogGameEvents {
		sub := subscribers.NewLoggerSubscriber("arena-"+gameID, a.logger, zerolog.DebugLevel)
		sub.SetEventFilter([]string{events.TypeGameStarted, events.TypeGameEnded})
		bus.Subscribe(sub)
	}

	start := time.Now()
	coordinator, err := game.NewCoordinator(game.CoordinatorConfig{
		Policies:        policies,
		PolicyNames:     names,
		StartingRanks:   a.config.StartingRanks,
		MaxTurns:        a.config.MaxTurns,
		ValidateActions: a.config.ValidateActions,
		GameID:          gameID,
		Logger:          a.logger,
		EventBus:        bus,
	})
	if err != nil {
		return nil, nil, err
	}

	outcome, err := coordinator.Play(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := &storage.GameResult{
		ID:        gameID,
		Policies:  names,
		Winner:    outcome.Winner,
		Reason:    outcome.Reason.String(),
		Turns:     outcome.Turns,
		Seed:      m.seed,
		Duration:  time.Since(start),
		CreatedAt: time.Now().UTC(),
	}
	return result, coordinator, nil
}
