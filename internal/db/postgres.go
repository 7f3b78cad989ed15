// Package db provides database connection helpers and schema bootstrap.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the vacancies table if it does not exist. The unique
// constraint on link is what makes upserts idempotent under concurrent
// collection runs: two simultaneous writers of the same link serialise on it.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vacancies (
			id          BIGSERIAL PRIMARY KEY,
			title       TEXT NOT NULL,
			company     TEXT NOT NULL DEFAULT '',
			salary      TEXT NOT NULL DEFAULT 'not specified',
			description TEXT NOT NULL DEFAULT '',
			experience  TEXT NOT NULL DEFAULT 'no',
			employment  TEXT NOT NULL DEFAULT 'full',
			skills      TEXT NOT NULL DEFAULT '',
			link        TEXT NOT NULL UNIQUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS vacancies_created_at_idx ON vacancies (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
