// Package database opens the PostgreSQL pool used by the pgsql repositories.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

// NewPgxPool parses databaseURL and opens a pool. With verify set the pool
// is pinged before it is returned, so a bad URL or a down server fails
// startup instead of the first request.
func NewPgxPool(ctx context.Context, databaseURL string, verify bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("PGSQL_URL is required for the postgres storage driver")
	}
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if verify {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
	}
	slog.Info("PostgreSQL pool ready",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.String("database", poolCfg.ConnConfig.Database),
		slog.Bool("verified", verify))
	return pool, nil
}

// ClosePgxPool closes pool if it was opened.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	pool.Close()
	slog.Info("PostgreSQL pool closed")
}
