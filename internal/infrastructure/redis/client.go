package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a new Redis client.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewClientWithRetry creates a Redis client, retrying connection
// establishment with exponential backoff.
func NewClientWithRetry(ctx context.Context, redisURL string, maxElapsed time.Duration) (*redis.Client, error) {
	var client *redis.Client

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = maxElapsed

	err := backoff.Retry(func() error {
		var err error
		client, err = NewClient(ctx, redisURL)
		return err
	}, backoff.WithContext(b, ctx))

	if err != nil {
		return nil, err
	}

	return client, nil
}
