package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
	"github.com/fintra/corebank/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		setupMocks  func(*mocks.MockAccountRepository)
		expectError bool
		errorType   error
	}{
		{
			name: "successful creation with zero opening balance",
			input: usecase.CreateAccountInput{
				UserID:         1,
				OpeningBalance: decimal.Zero,
			},
			setupMocks:  func(accRepo *mocks.MockAccountRepository) {},
			expectError: false,
		},
		{
			name: "successful creation with opening balance",
			input: usecase.CreateAccountInput{
				UserID:         2,
				OpeningBalance: decimal.NewFromInt(500),
			},
			setupMocks:  func(accRepo *mocks.MockAccountRepository) {},
			expectError: false,
		},
		{
			name: "reject second account for same user",
			input: usecase.CreateAccountInput{
				UserID:         3,
				OpeningBalance: decimal.Zero,
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 3})
			},
			expectError: true,
			errorType:   domain.ErrAccountAlreadyExists,
		},
		{
			name: "reject negative opening balance",
			input: usecase.CreateAccountInput{
				UserID:         4,
				OpeningBalance: decimal.NewFromInt(-10),
			},
			setupMocks:  func(accRepo *mocks.MockAccountRepository) {},
			expectError: true,
			errorType:   domain.ErrNegativeOpening,
		},
		{
			name: "unique violation during insert maps to already exists",
			input: usecase.CreateAccountInput{
				UserID:         5,
				OpeningBalance: decimal.Zero,
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository) {
				// Lookup misses but the insert races with another request.
				accRepo.GetByUserIDFunc = func(ctx context.Context, userID int64) (*domain.Account, error) {
					return nil, domain.ErrInvalidAccount
				}
				accRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
					return domain.ErrAccountAlreadyExists
				}
			},
			expectError: true,
			errorType:   domain.ErrAccountAlreadyExists,
		},
		{
			name: "storage failure during lookup is masked",
			input: usecase.CreateAccountInput{
				UserID:         6,
				OpeningBalance: decimal.Zero,
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository) {
				accRepo.GetByUserIDFunc = func(ctx context.Context, userID int64) (*domain.Account, error) {
					return nil, errors.New("connection reset")
				}
			},
			expectError: true,
			errorType:   domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo := mocks.NewMockAccountRepository()
			tt.setupMocks(accRepo)

			uc := usecase.NewAccountUseCase(accRepo, nil, zerolog.Nop())
			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if account == nil {
					t.Fatal("expected account, got nil")
				}
				if account.ID == 0 {
					t.Error("expected account ID to be populated")
				}
				if !account.Balance.Equal(tt.input.OpeningBalance) {
					t.Errorf("expected balance %s, got %s", tt.input.OpeningBalance, account.Balance)
				}
				if !account.OpeningBalance.Equal(tt.input.OpeningBalance) {
					t.Errorf("expected opening balance %s, got %s", tt.input.OpeningBalance, account.OpeningBalance)
				}
			}
		})
	}
}

func TestAccountUseCase_CreateAccount_NoEntryForOpeningBalance(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accRepo, nil, zerolog.Nop())

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		UserID:         1,
		OpeningBalance: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// balance == opening balance + sum(entries); with no entries, they match.
	if !account.Balance.Sub(account.OpeningBalance).IsZero() {
		t.Errorf("opening balance must not create drift, got %s", account.Balance.Sub(account.OpeningBalance))
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{UserID: 7, Balance: decimal.NewFromInt(42)})

	uc := usecase.NewAccountUseCase(accRepo, nil, zerolog.Nop())

	t.Run("get existing account", func(t *testing.T) {
		account, err := uc.GetAccount(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.UserID != 7 {
			t.Errorf("expected user ID 7, got %d", account.UserID)
		}
	})

	t.Run("get non-existent account", func(t *testing.T) {
		_, err := uc.GetAccount(context.Background(), 999)
		if !errors.Is(err, domain.ErrInvalidAccount) {
			t.Errorf("expected ErrInvalidAccount, got %v", err)
		}
	})

	t.Run("storage failure is masked", func(t *testing.T) {
		accRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Account, error) {
			return nil, errors.New("timeout")
		}
		defer func() { accRepo.GetByIDFunc = nil }()

		_, err := uc.GetAccount(context.Background(), 1)
		if !errors.Is(err, domain.ErrStorage) {
			t.Errorf("expected ErrStorage, got %v", err)
		}
	})
}

func TestAccountUseCase_GetAccountByUser(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Create(context.Background(), &domain.Account{UserID: 9, Balance: decimal.NewFromInt(10)})

	uc := usecase.NewAccountUseCase(accRepo, nil, zerolog.Nop())

	account, err := uc.GetAccountByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.UserID != 9 {
		t.Errorf("expected user ID 9, got %d", account.UserID)
	}

	_, err = uc.GetAccountByUser(context.Background(), 10)
	if !errors.Is(err, domain.ErrInvalidAccount) {
		t.Errorf("expected ErrInvalidAccount, got %v", err)
	}
}
