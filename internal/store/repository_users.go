package store

import (
	"context"
	"errors"
	"strings"
)

// RecordWin adds one win to username, creating the row on first win.
func (s *Store) RecordWin(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username required")
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO users (username, wins) VALUES ($1, 1)
		ON CONFLICT (username) DO UPDATE
		SET wins = users.wins + 1, updated_at = now()`, username)
	return err
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT username, wins FROM users
		ORDER BY wins DESC, username
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Wins); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetWins(ctx context.Context, username string) (int, error) {
	var wins int
	err := s.Pool.QueryRow(ctx, `SELECT wins FROM users WHERE username = $1`, username).Scan(&wins)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return wins, nil
}
