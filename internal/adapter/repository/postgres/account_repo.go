package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/postgres/generated"
	"github.com/fintra/corebank/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts a new account and fills in its generated ID. A unique
// violation on user_id maps to domain.ErrAccountAlreadyExists.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	row, err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		UserID:         account.UserID,
		Balance:        decimalToNumeric(account.Balance),
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}

		return err
	}

	account.ID = row.ID

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidAccount
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByUserID retrieves the account owned by a user.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	row, err := r.queries.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidAccount
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByUserIDForUpdate retrieves a user's account with a FOR UPDATE lock.
func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID int64) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetAccountByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidAccount
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		UserID:         row.UserID,
		Balance:        numericToDecimal(row.Balance),
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
