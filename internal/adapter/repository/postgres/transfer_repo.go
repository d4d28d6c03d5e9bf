package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/postgres/generated"
	"github.com/fintra/corebank/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a new transfer record within the transaction.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.CreateTransfer(ctx, generated.CreateTransferParams{
		Reference:     transfer.Reference,
		FromAccountID: transfer.FromAccountID,
		ToAccountID:   transfer.ToAccountID,
		SenderID:      transfer.SenderID,
		RecipientID:   transfer.RecipientID,
		Amount:        decimalToNumeric(transfer.Amount),
		CreatedAt:     timeToPgTimestamptz(transfer.CreatedAt),
	})
	if err != nil {
		return err
	}

	transfer.ID = row.ID

	return nil
}

// GetByReference retrieves a transfer by its public reference.
func (r *TransferRepository) GetByReference(ctx context.Context, reference string) (*domain.Transfer, error) {
	row, err := r.queries.GetTransferByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// ListByAccount retrieves transfers where the account is sender or recipient.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.queries.ListTransfersByAccount(ctx, generated.ListTransfersByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.Transfer, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.Transfer {
	return &domain.Transfer{
		ID:            row.ID,
		Reference:     row.Reference,
		FromAccountID: row.FromAccountID,
		ToAccountID:   row.ToAccountID,
		SenderID:      row.SenderID,
		RecipientID:   row.RecipientID,
		Amount:        numericToDecimal(row.Amount),
		CreatedAt:     row.CreatedAt.Time,
	}
}
