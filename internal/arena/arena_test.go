package arena

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/StrategoEngine/internal/policy"
	"github.com/mitchelldurbincs/StrategoEngine/internal/storage"
)

type memoryStore struct {
	mu      sync.Mutex
	results []*storage.GameResult
	err     error
}

func (m *memoryStore) SaveResult(_ context.Context, r *storage.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.results = append(m.results, r)
	return nil
}

func testConfig(games, workers int) Config {
	return Config{
		Policies:        [2]string{policy.NameRandom, policy.NameAggressive},
		Games:           games,
		Workers:         workers,
		Seed:            DefaultSeed,
		MaxTurns:        300,
		ValidateActions: true,
		LogGameEvents:   true,
		Logger:          zerolog.Nop(),
	}
}

func runArena(t *testing.T, cfg Config) *Summary {
	t.Helper()
	a, err := New(cfg)
	require.NoError(t, err)
	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	return summary
}

func TestArenaRun(t *testing.T) {
	store := &memoryStore{}
	cfg := testConfig(24, 4)
	cfg.Store = store

	summary := runArena(t, cfg)

	assert.Equal(t, 24, summary.Games)
	assert.Equal(t, summary.Games, summary.Wins[0]+summary.Wins[1]+summary.Timeouts)
	assert.Equal(t, summary.Wins[0]+summary.Wins[1], summary.SeatWins[0]+summary.SeatWins[1])
	assert.Positive(t, summary.AverageTurns())
	assert.LessOrEqual(t, summary.AverageTurns(), 300.0)

	require.Len(t, store.results, 24)
	ids := make(map[string]bool)
	for _, r := range store.results {
		assert.NotEmpty(t, r.ID)
		assert.False(t, ids[r.ID], "game ids are unique")
		ids[r.ID] = true
		assert.ElementsMatch(t, []string{policy.NameRandom, policy.NameAggressive}, r.Policies[:])
	}
}

func TestArenaIsDeterministic(t *testing.T) {
	sequential := runArena(t, testConfig(12, 1))
	parallel := runArena(t, testConfig(12, 6))

	sequential.Duration = 0
	parallel.Duration = 0
	assert.Equal(t, sequential, parallel)

	other := testConfig(12, 1)
	other.Seed = DefaultSeed + 1
	a, err := New(other)
	require.NoError(t, err)
	assert.NotEqual(t, a.schedule(), mustNew(t, testConfig(12, 1)).schedule())
}

func TestArenaAlternatesSeats(t *testing.T) {
	matches := mustNew(t, testConfig(200, 1)).schedule()

	firstSeat := [2]int{}
	for i, m := range matches {
		assert.Equal(t, i, m.index)
		assert.ElementsMatch(t, []int{0, 1}, m.slots[:])
		firstSeat[m.slots[0]]++
	}
	assert.Greater(t, firstSeat[0], 50)
	assert.Greater(t, firstSeat[1], 50)
}

func TestArenaReplay(t *testing.T) {
	store := &memoryStore{}
	cfg := testConfig(3, 2)
	cfg.Store = store
	a := mustNew(t, cfg)

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, store.results)

	original := store.results[0]
	replayed, board, err := a.Replay(context.Background(), original.Seed)
	require.NoError(t, err)
	assert.Contains(t, board, " 0  1  2  3  4  5  6  7  8  9")
	assert.Contains(t, board, "to move")

	assert.Equal(t, original.Policies, replayed.Policies)
	assert.Equal(t, original.Winner, replayed.Winner)
	assert.Equal(t, original.Turns, replayed.Turns)
	assert.Equal(t, original.Reason, replayed.Reason)
	assert.NotEqual(t, original.ID, replayed.ID)
}

func TestArenaWithSQLiteStore(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "arena.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig(6, 3)
	cfg.Store = db
	summary := runArena(t, cfg)

	stats, err := db.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	wins := map[string]int{}
	for _, s := range stats {
		assert.Equal(t, 6, s.Games)
		wins[s.Policy] = s.Wins
	}
	assert.Equal(t, summary.Wins[0], wins[policy.NameRandom])
	assert.Equal(t, summary.Wins[1], wins[policy.NameAggressive])
}

func TestArenaErrors(t *testing.T) {
	t.Run("NoGames", func(t *testing.T) {
		_, err := New(testConfig(0, 1))
		assert.Error(t, err)
	})

	t.Run("UnknownPolicy", func(t *testing.T) {
		cfg := testConfig(1, 1)
		cfg.Policies[1] = "telepathic"
		_, err := New(cfg)
		assert.ErrorContains(t, err, "telepathic")
	})

	t.Run("StoreFailure", func(t *testing.T) {
		cfg := testConfig(4, 2)
		cfg.Store = &memoryStore{err: errors.New("disk full")}
		_, err := mustNew(t, cfg).Run(context.Background())
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := mustNew(t, testConfig(4, 2)).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewDefaults(t *testing.T) {
	cfg := testConfig(2, 0)
	cfg.MaxTurns = 0
	a := mustNew(t, cfg)

	assert.Positive(t, a.config.Workers)
	assert.LessOrEqual(t, a.config.Workers, 2, "workers never exceed games")
	assert.Equal(t, 5000, a.config.MaxTurns)
	assert.NotEmpty(t, a.config.StartingRanks)
}

func mustNew(t *testing.T, cfg Config) *Arena {
	t.Helper()
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}
