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

// TransferUseCase moves funds between two users' accounts: two locked balance
// updates, two entries, and one transfer record in a single database
// transaction.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	entryRepo    EntryRepository
	refGen       ReferenceGenerator
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	entryRepo EntryRepository,
	refGen ReferenceGenerator,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		entryRepo:    entryRepo,
		refGen:       refGen,
		metrics:      metrics,
		logger:       logger,
	}
}

// TransferInput represents input for a transfer between two users.
type TransferInput struct {
	SenderID    int64
	RecipientID int64
	Amount      decimal.Decimal
}

// Transfer executes the transfer. Account locks are always acquired in
// ascending user-ID order regardless of transfer direction, so two
// simultaneous opposite-direction transfers between the same pair of users
// cannot deadlock.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transfer, error) {
	// Rejected before any transaction is opened; no locks are taken.
	if input.SenderID == input.RecipientID {
		return nil, domain.ErrSelfTransfer
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	start := time.Now()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		uc.logger.Error().Err(err).Msg("begin transaction failed")
		return nil, domain.ErrStorage
	}
	defer tx.Rollback(ctx)

	sender, recipient, err := uc.lockAccounts(ctx, tx, input.SenderID, input.RecipientID)
	if err != nil {
		return nil, err
	}

	if err := sender.ValidateDebit(input.Amount); err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues("insufficient_balance").Inc()
		}
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, sender.ApplyDebit(input.Amount), now); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", sender.ID).Msg("sender balance update failed")
		return nil, domain.ErrStorage
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, recipient.ID, recipient.ApplyCredit(input.Amount), now); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", recipient.ID).Msg("recipient balance update failed")
		return nil, domain.ErrStorage
	}

	debitEntry := &domain.Entry{AccountID: sender.ID, Amount: input.Amount.Neg(), CreatedAt: now}
	if err := uc.entryRepo.Create(ctx, tx, debitEntry); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", sender.ID).Msg("debit entry insert failed")
		return nil, domain.ErrStorage
	}

	creditEntry := &domain.Entry{AccountID: recipient.ID, Amount: input.Amount, CreatedAt: now}
	if err := uc.entryRepo.Create(ctx, tx, creditEntry); err != nil {
		uc.logger.Error().Err(err).Int64("account_id", recipient.ID).Msg("credit entry insert failed")
		return nil, domain.ErrStorage
	}

	transfer := &domain.Transfer{
		Reference:     uc.refGen.Generate(),
		FromAccountID: sender.ID,
		ToAccountID:   recipient.ID,
		SenderID:      input.SenderID,
		RecipientID:   input.RecipientID,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	if err := uc.transferRepo.Create(ctx, tx, transfer); err != nil {
		uc.logger.Error().Err(err).Msg("transfer insert failed")
		return nil, domain.ErrStorage
	}

	if err := tx.Commit(ctx); err != nil {
		uc.logger.Error().Err(err).Msg("commit failed")
		return nil, domain.ErrStorage
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
	}

	return transfer, nil
}

// lockAccounts acquires both row locks in ascending user-ID order and hands
// back the accounts keyed by role.
func (uc *TransferUseCase) lockAccounts(ctx context.Context, tx Transaction, senderID, recipientID int64) (sender, recipient *domain.Account, err error) {
	first, second := senderID, recipientID
	if second < first {
		first, second = second, first
	}

	locked := make(map[int64]*domain.Account, 2)

	for _, userID := range []int64{first, second} {
		account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAccount) {
				return nil, nil, domain.ErrInvalidAccount
			}

			uc.logger.Error().Err(err).Int64("user_id", userID).Msg("account lock failed")

			return nil, nil, domain.ErrStorage
		}

		locked[userID] = account
	}

	return locked[senderID], locked[recipientID], nil
}

// GetTransfer retrieves a transfer by its public reference.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, reference string) (*domain.Transfer, error) {
	transfer, err := uc.transferRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return nil, err
		}

		uc.logger.Error().Err(err).Str("reference", reference).Msg("transfer lookup failed")

		return nil, domain.ErrStorage
	}

	return transfer, nil
}

// ListTransfersByAccount lists transfers touching an account.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	transfers, err := uc.transferRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		uc.logger.Error().Err(err).Int64("account_id", accountID).Msg("transfer list failed")
		return nil, domain.ErrStorage
	}

	return transfers, nil
}
