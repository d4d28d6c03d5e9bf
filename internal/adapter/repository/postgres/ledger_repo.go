package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CheckConsistency computes, in a single statement, the total movement of all
// balances away from their opening values and the total of all entries.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.TotalBalanceDrift), numericToDecimal(row.TotalEntryAmount), nil
}

// Totals returns how many accounts and transfers the ledger holds.
func (r *LedgerRepository) Totals(ctx context.Context) (int64, int64, error) {
	accounts, err := r.queries.CountAccounts(ctx)
	if err != nil {
		return 0, 0, err
	}

	transfers, err := r.queries.CountTransfers(ctx)
	if err != nil {
		return 0, 0, err
	}

	return accounts, transfers, nil
}
