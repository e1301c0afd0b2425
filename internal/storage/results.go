package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidResult = errors.New("invalid game result")

// GameResult is one finished game. Winner is -1 when the game hit the turn limit.
type GameResult struct {
	ID        string
	Policies  [2]string
	Winner    int
	Reason    string
	Turns     int
	Seed      uint64
	Duration  time.Duration
	CreatedAt time.Time
}

// WinnerPolicy returns the name of the winning policy, or "" when nobody won
func (r *GameResult) WinnerPolicy() string {
	if r.Winner < 0 {
		return ""
	}
	return r.Policies[r.Winner]
}

// PolicyStats aggregates every stored game a policy took part in
type PolicyStats struct {
	Policy       string
	Games        int
	Wins         int
	Timeouts     int
	AverageTurns float64
}

// WinRate is the share of games won
func (s PolicyStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// SaveResult stores a finished game.
func (db *DB) SaveResult(ctx context.Context, r *GameResult) error {
	if r.ID == "" || r.Winner < -1 || r.Winner > 1 {
		return fmt.Errorf("%w: id %q winner %d", ErrInvalidResult, r.ID, r.Winner)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO game_results (id, policy0, policy1, winner, reason, turns, seed, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Policies[0], r.Policies[1], r.Winner, r.Reason, r.Turns, int64(r.Seed),
		r.Duration.Milliseconds(), r.CreatedAt)
	if err != nil {
		return fmt.Errorf("save result %s: %w", r.ID, err)
	}
	return nil
}

// ListResults returns the most recent results first. limit <= 0 returns all of them.
func (db *DB) ListResults(ctx context.Context, limit int) ([]*GameResult, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, policy0, policy1, winner, reason, turns, seed, duration_ms, created_at
		FROM game_results
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*GameResult
	for rows.Next() {
		r := &GameResult{}
		var seed, durationMs int64
		if err := rows.Scan(&r.ID, &r.Policies[0], &r.Policies[1], &r.Winner, &r.Reason, &r.Turns,
			&seed, &durationMs, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, r)
	}
	return results, rows.Err()
}

// Stats aggregates all stored results per policy, ordered by policy name.
// A game between two instances of one policy counts twice, once per seat.
func (db *DB) Stats(ctx context.Context) ([]PolicyStats, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT policy, COUNT(*), SUM(won), SUM(timeout), AVG(turns)
		FROM (
			SELECT policy0 AS policy, winner = 0 AS won, winner = -1 AS timeout, turns FROM game_results
			UNION ALL
			SELECT policy1 AS policy, winner = 1 AS won, winner = -1 AS timeout, turns FROM game_results
		)
		GROUP BY policy
		ORDER BY policy
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PolicyStats
	for rows.Next() {
		var s PolicyStats
		if err := rows.Scan(&s.Policy, &s.Games, &s.Wins, &s.Timeouts, &s.AverageTurns); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// DeleteResults removes every stored result and returns how many were removed.
func (db *DB) DeleteResults(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM game_results`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
