package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
)

// AccountRepository defines data access for accounts. Create populates the
// account's generated ID on success.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Account, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID int64) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
	SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, transfer *domain.Transfer) error
	GetByReference(ctx context.Context, reference string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error)
}

// UserRepository defines data access for users. GetByEmail returns (nil, nil)
// when no user exists for the email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetDetails(ctx context.Context, userID int64) (*domain.UserDetails, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (balanceDrift, entryTotal decimal.Decimal, err error)
	Totals(ctx context.Context) (accounts, transfers int64, err error)
}

// Transaction represents a database transaction. Commit and Rollback are the
// only terminal operations; Rollback after Commit is a no-op.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// ReferenceGenerator generates unique transfer references.
type ReferenceGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
