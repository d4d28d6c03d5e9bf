package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, databaseURL string, maxConns, minConns int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = int32(maxConns)
	config.MinConns = int32(minConns)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewPoolWithRetry creates a connection pool, retrying with exponential
// backoff while the database comes up. Only connection establishment is
// retried here; business operations are never retried automatically.
func NewPoolWithRetry(ctx context.Context, databaseURL string, maxConns, minConns int, maxElapsed time.Duration) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	err := backoff.Retry(func() error {
		var err error
		pool, err = NewPool(ctx, databaseURL, maxConns, minConns)
		return err
	}, backoff.WithContext(b, ctx))

	if err != nil {
		return nil, err
	}

	return pool, nil
}
