package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/metrics"
)

// TransactionUseCase applies a single credit or debit to one account: the
// account row is locked, the balance adjusted, and one signed entry appended,
// all in one database transaction.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// ApplyTransactionInput represents input for a credit or debit. AccountID is
// optional (zero means "not supplied"); when present it is only an
// authorization cross-check against the row locked by user ID.
type ApplyTransactionInput struct {
	UserID    int64
	AccountID int64
	Amount    decimal.Decimal
	Direction domain.Direction
}

// Apply runs the balance mutation. The row lock (SELECT ... FOR UPDATE)
// serializes concurrent mutations of the same account; the deferred rollback
// releases the lock on every failure path and is a no-op after commit.
func (uc *TransactionUseCase) Apply(ctx context.Context, input ApplyTransactionInput) (*domain.Entry, error) {
	if !input.Direction.IsValid() {
		return nil, domain.ErrInvalidDirection
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		uc.logger.Error().Err(err).Msg("begin transaction failed")
		return nil, domain.ErrStorage
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAccount) {
			return nil, domain.ErrInvalidAccount
		}

		uc.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("account lock failed")

		return nil, domain.ErrStorage
	}

	if input.AccountID != 0 && account.ID != input.AccountID {
		return nil, domain.ErrInvalidAccount
	}

	if input.Direction == domain.DirectionDebit {
		if err := account.ValidateDebit(input.Amount); err != nil {
			if uc.metrics != nil {
				uc.metrics.TransactionErrors.WithLabelValues("insufficient_balance").Inc()
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	signed := input.Direction.SignedAmount(input.Amount)
	newBalance := account.Balance.Add(signed)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", account.ID).Msg("balance update failed")
		return nil, domain.ErrStorage
	}

	entry := &domain.Entry{
		AccountID: account.ID,
		Amount:    signed,
		CreatedAt: now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", account.ID).Msg("entry insert failed")
		return nil, domain.ErrStorage
	}

	if err := tx.Commit(ctx); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", account.ID).Msg("commit failed")
		return nil, domain.ErrStorage
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsApplied.WithLabelValues(string(input.Direction)).Inc()
	}

	return entry, nil
}
