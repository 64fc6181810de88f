package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"four-in-a-row/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Store wraps DB access.
type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// EnsureSchema applies the bootstrap migration. Every statement is
// idempotent so it is safe on each start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ddl, err := migrations.FS.ReadFile(migrations.InitUp)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := s.Pool.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}
