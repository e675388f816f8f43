package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxPoolConns = 5

// Connect dials the database and makes sure the schema exists. The caller
// owns the returned pool.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = maxPoolConns

	dctx, cancel := context.WithTimeout(ctx, 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(dctx, cfg)

	if err != nil {
		return nil, err
	}

	if err := pool.Ping(dctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := EnsureSchema(dctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
