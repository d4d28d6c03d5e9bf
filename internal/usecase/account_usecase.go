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

// AccountUseCase handles account creation and lookups.
type AccountUseCase struct {
	accountRepo AccountRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, metrics *metrics.Metrics, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID         int64
	OpeningBalance decimal.Decimal
}

// CreateAccount creates the single account for a user, optionally seeded with
// an opening balance. The opening balance is not an entry; entries only
// record explicit fund/withdraw/transfer movements.
//
// The UNIQUE constraint on accounts.user_id is the authoritative duplicate
// guard; the lookup below only exists to answer with a friendlier error
// before attempting the insert.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateOpeningBalance(input.OpeningBalance); err != nil {
		return nil, err
	}

	_, err := uc.accountRepo.GetByUserID(ctx, input.UserID)
	if err == nil {
		return nil, domain.ErrAccountAlreadyExists
	}

	if !errors.Is(err, domain.ErrInvalidAccount) {
		uc.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("account lookup failed")
		return nil, domain.ErrStorage
	}

	now := time.Now().UTC()

	account := &domain.Account{
		UserID:         input.UserID,
		Balance:        input.OpeningBalance,
		OpeningBalance: input.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountAlreadyExists) {
			return nil, domain.ErrAccountAlreadyExists
		}

		uc.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("account insert failed")

		return nil, domain.ErrStorage
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
		uc.metrics.AccountOperations.WithLabelValues("create").Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAccount) {
			return nil, err
		}

		uc.logger.Error().Err(err).Int64("account_id", id).Msg("account lookup failed")

		return nil, domain.ErrStorage
	}

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("get").Inc()
	}

	return account, nil
}

// GetAccountByUser retrieves the account owned by a user.
func (uc *AccountUseCase) GetAccountByUser(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAccount) {
			return nil, err
		}

		uc.logger.Error().Err(err).Int64("user_id", userID).Msg("account lookup failed")

		return nil, domain.ErrStorage
	}

	return account, nil
}
