package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/postgres/generated"
	"github.com/fintra/corebank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a new entry within the transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		AccountID: entry.AccountID,
		Amount:    decimalToNumeric(entry.Amount),
		CreatedAt: timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		return err
	}

	entry.ID = row.ID

	return nil
}

// GetByAccount retrieves entries for an account, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByAccount(ctx, generated.GetEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.Entry{
			ID:        row.ID,
			AccountID: row.AccountID,
			Amount:    numericToDecimal(row.Amount),
			CreatedAt: row.CreatedAt.Time,
		})
	}

	return entries, nil
}

// SumByAccount returns the signed sum of all entries for an account.
func (r *EntryRepository) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	sum, err := r.queries.SumEntriesByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}
