package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single database transaction. A lock
	// held past this point is released by the rollback the timeout forces.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
