package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) SaveGame(ctx context.Context, g GameRecord) error {
	id, err := uuidParam(g.ID)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO games (id, player1, player2, winner, reason, moves, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		id, g.Player1, g.Player2, g.Winner, g.Reason, g.Moves,
		timestamptzParam(g.StartedAt), timestamptzParam(g.EndedAt),
	)
	return err
}

func (s *Store) GetGame(ctx context.Context, id string) (GameRecord, error) {
	gid, err := uuidParam(id)
	if err != nil {
		return GameRecord{}, ErrNotFound
	}
	row := s.Pool.QueryRow(ctx, `
		SELECT id, player1, player2, winner, reason, moves, started_at, ended_at
		FROM games WHERE id = $1`, gid)
	g, err := scanGame(row)
	if err != nil {
		return GameRecord{}, mapNotFound(err)
	}
	return g, nil
}

// ListGamesByPlayer returns the most recent games username took part in.
func (s *Store) ListGamesByPlayer(ctx context.Context, username string, limit, offset int) ([]GameRecord, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, player1, player2, winner, reason, moves, started_at, ended_at
		FROM games
		WHERE player1 = $1 OR player2 = $1
		ORDER BY ended_at DESC, id
		LIMIT $2 OFFSET $3`, username, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]GameRecord, 0, limit)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.Pool.QueryRow(ctx, `
		SELECT
		  (SELECT count(*) FROM games),
		  (SELECT count(*) FROM games WHERE winner = 'draw'),
		  (SELECT count(*) FROM users)`).Scan(&t.Games, &t.Draws, &t.Players)
	return t, err
}

func scanGame(row pgx.Row) (GameRecord, error) {
	var (
		g         GameRecord
		id        pgtype.UUID
		startedAt pgtype.Timestamptz
		endedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &g.Player1, &g.Player2, &g.Winner, &g.Reason, &g.Moves, &startedAt, &endedAt); err != nil {
		return GameRecord{}, err
	}
	g.ID = uuidVal(id)
	g.StartedAt = timeVal(startedAt)
	g.EndedAt = timeVal(endedAt)
	return g, nil
}
