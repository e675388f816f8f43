package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const usersTable = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	avatar        TEXT NOT NULL DEFAULT '',
	study_plans   JSONB NOT NULL DEFAULT '[]'::jsonb,
	target_date   TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
)`

// EnsureSchema runs as part of the supervisor's dial step, so a database that
// accepts connections but cannot run DDL retries like any other failure.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, usersTable)

	return err
}
