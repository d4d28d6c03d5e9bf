package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
	"github.com/fintra/corebank/internal/usecase/mocks"
)

func newTransferMocks() (*mocks.MockAccountRepository, *mocks.MockTransferRepository, *mocks.MockEntryRepository, *mocks.MockTransactionManager, *mocks.MockReferenceGenerator) {
	return mocks.NewMockAccountRepository(),
		mocks.NewMockTransferRepository(),
		mocks.NewMockEntryRepository(),
		mocks.NewMockTransactionManager(),
		mocks.NewMockReferenceGenerator()
}

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name           string
		input          usecase.TransferInput
		setupMocks     func(*mocks.MockAccountRepository, *mocks.MockTransferRepository, *mocks.MockEntryRepository, *mocks.MockTransactionManager)
		expectError    bool
		errorType      error
		expectRollback bool
		expectNoTx     bool
	}{
		{
			name: "successful transfer",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 2,
				Amount:      decimal.NewFromInt(100),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
				accRepo.Create(context.Background(), &domain.Account{UserID: 2, Balance: decimal.Zero})
			},
		},
		{
			name: "transfer of entire balance succeeds",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 2,
				Amount:      decimal.NewFromInt(500),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
				accRepo.Create(context.Background(), &domain.Account{UserID: 2, Balance: decimal.Zero})
			},
		},
		{
			name: "reject self transfer before opening a transaction",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 1,
				Amount:      decimal.NewFromInt(100),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
			},
			expectError: true,
			errorType:   domain.ErrSelfTransfer,
			expectNoTx:  true,
		},
		{
			name: "reject insufficient balance",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 2,
				Amount:      decimal.NewFromInt(501),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
				accRepo.Create(context.Background(), &domain.Account{UserID: 2, Balance: decimal.Zero})
			},
			expectError:    true,
			errorType:      domain.ErrInsufficientBalance,
			expectRollback: true,
		},
		{
			name: "reject unknown recipient",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 99,
				Amount:      decimal.NewFromInt(100),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
			},
			expectError:    true,
			errorType:      domain.ErrInvalidAccount,
			expectRollback: true,
		},
		{
			name: "reject zero amount",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 2,
				Amount:      decimal.Zero,
			},
			setupMocks:  func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
			expectNoTx:  true,
		},
		{
			name: "transfer record failure rolls back and is masked",
			input: usecase.TransferInput{
				SenderID:    1,
				RecipientID: 2,
				Amount:      decimal.NewFromInt(100),
			},
			setupMocks: func(accRepo *mocks.MockAccountRepository, txRepo *mocks.MockTransferRepository, entryRepo *mocks.MockEntryRepository, txMgr *mocks.MockTransactionManager) {
				accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
				accRepo.Create(context.Background(), &domain.Account{UserID: 2, Balance: decimal.Zero})
				txRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
					return errors.New("write failed")
				}
			},
			expectError:    true,
			errorType:      domain.ErrStorage,
			expectRollback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo, txRepo, entryRepo, txMgr, refGen := newTransferMocks()

			tt.setupMocks(accRepo, txRepo, entryRepo, txMgr)

			uc := usecase.NewTransferUseCase(txMgr, accRepo, txRepo, entryRepo, refGen, nil, zerolog.Nop())
			transfer, err := uc.Transfer(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				if tt.expectNoTx && txMgr.LastTransaction() != nil {
					t.Error("expected no transaction to be started")
				}
				if tt.expectRollback {
					tx := txMgr.LastTransaction()
					if tx == nil {
						t.Fatal("expected a transaction to have been started")
					}
					if !tx.RolledBack() {
						t.Error("expected transaction to be rolled back")
					}
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if transfer == nil {
					t.Fatal("expected transfer, got nil")
				}
				if transfer.Reference == "" {
					t.Error("expected transfer reference to be set")
				}
				if tx := txMgr.LastTransaction(); tx == nil || !tx.Committed() {
					t.Error("expected transaction to be committed")
				}
			}
		})
	}
}

func TestTransferUseCase_Transfer_MovesBalancesAndWritesEntries(t *testing.T) {
	accRepo, txRepo, entryRepo, txMgr, refGen := newTransferMocks()

	sender := &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)}
	recipient := &domain.Account{UserID: 2, Balance: decimal.NewFromInt(40)}
	accRepo.Create(context.Background(), sender)
	accRepo.Create(context.Background(), recipient)

	uc := usecase.NewTransferUseCase(txMgr, accRepo, txRepo, entryRepo, refGen, nil, zerolog.Nop())

	transfer, err := uc.Transfer(context.Background(), usecase.TransferInput{
		SenderID:    1,
		RecipientID: 2,
		Amount:      decimal.RequireFromString("120.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sender.Balance.Equal(decimal.RequireFromString("379.50")) {
		t.Errorf("expected sender balance 379.50, got %s", sender.Balance)
	}
	if !recipient.Balance.Equal(decimal.RequireFromString("160.50")) {
		t.Errorf("expected recipient balance 160.50, got %s", recipient.Balance)
	}

	entries := entryRepo.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].AccountID != sender.ID || !entries[0].Amount.Equal(decimal.RequireFromString("-120.50")) {
		t.Errorf("unexpected debit entry: account=%d amount=%s", entries[0].AccountID, entries[0].Amount)
	}
	if entries[1].AccountID != recipient.ID || !entries[1].Amount.Equal(decimal.RequireFromString("120.50")) {
		t.Errorf("unexpected credit entry: account=%d amount=%s", entries[1].AccountID, entries[1].Amount)
	}

	sum := entries[0].Amount.Add(entries[1].Amount)
	if !sum.IsZero() {
		t.Errorf("transfer entries must net to zero, got %s", sum)
	}

	if transfer.FromAccountID != sender.ID || transfer.ToAccountID != recipient.ID {
		t.Errorf("unexpected transfer accounts: from=%d to=%d", transfer.FromAccountID, transfer.ToAccountID)
	}
	if transfer.SenderID != 1 || transfer.RecipientID != 2 {
		t.Errorf("unexpected transfer users: sender=%d recipient=%d", transfer.SenderID, transfer.RecipientID)
	}
}

func TestTransferUseCase_Transfer_LockOrderIsAscendingUserID(t *testing.T) {
	tests := []struct {
		name        string
		senderID    int64
		recipientID int64
	}{
		{name: "sender has lower ID", senderID: 1, recipientID: 2},
		{name: "recipient has lower ID", senderID: 2, recipientID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accRepo, txRepo, entryRepo, txMgr, refGen := newTransferMocks()

			accRepo.Create(context.Background(), &domain.Account{UserID: 1, Balance: decimal.NewFromInt(500)})
			accRepo.Create(context.Background(), &domain.Account{UserID: 2, Balance: decimal.NewFromInt(500)})

			var mu sync.Mutex
			var lockOrder []int64
			accRepo.GetByUserIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, userID int64) (*domain.Account, error) {
				mu.Lock()
				lockOrder = append(lockOrder, userID)
				mu.Unlock()
				return accRepo.GetByUserID(ctx, userID)
			}

			uc := usecase.NewTransferUseCase(txMgr, accRepo, txRepo, entryRepo, refGen, nil, zerolog.Nop())

			if _, err := uc.Transfer(context.Background(), usecase.TransferInput{
				SenderID:    tt.senderID,
				RecipientID: tt.recipientID,
				Amount:      decimal.NewFromInt(10),
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(lockOrder) != 2 || lockOrder[0] != 1 || lockOrder[1] != 2 {
				t.Errorf("expected locks in order [1 2], got %v", lockOrder)
			}
		})
	}
}

func TestTransferUseCase_GetTransfer(t *testing.T) {
	txRepo := mocks.NewMockTransferRepository()

	txRepo.Create(context.Background(), nil, &domain.Transfer{
		Reference:     "01J8ZXK4T2",
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        decimal.NewFromInt(100),
	})

	uc := usecase.NewTransferUseCase(nil, nil, txRepo, nil, nil, nil, zerolog.Nop())

	t.Run("get existing transfer", func(t *testing.T) {
		transfer, err := uc.GetTransfer(context.Background(), "01J8ZXK4T2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if transfer.Reference != "01J8ZXK4T2" {
			t.Errorf("expected reference 01J8ZXK4T2, got %s", transfer.Reference)
		}
	})

	t.Run("get non-existent transfer", func(t *testing.T) {
		_, err := uc.GetTransfer(context.Background(), "missing")
		if !errors.Is(err, domain.ErrTransferNotFound) {
			t.Errorf("expected ErrTransferNotFound, got %v", err)
		}
	})
}

func TestTransferUseCase_ListTransfersByAccount(t *testing.T) {
	txRepo := mocks.NewMockTransferRepository()

	txRepo.Create(context.Background(), nil, &domain.Transfer{Reference: "a", FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(10)})
	txRepo.Create(context.Background(), nil, &domain.Transfer{Reference: "b", FromAccountID: 3, ToAccountID: 1, Amount: decimal.NewFromInt(20)})
	txRepo.Create(context.Background(), nil, &domain.Transfer{Reference: "c", FromAccountID: 2, ToAccountID: 3, Amount: decimal.NewFromInt(30)})

	uc := usecase.NewTransferUseCase(nil, nil, txRepo, nil, nil, nil, zerolog.Nop())

	transfers, err := uc.ListTransfersByAccount(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Account 1 appears on both sides across two transfers.
	if len(transfers) != 2 {
		t.Errorf("expected 2 transfers, got %d", len(transfers))
	}
}
