package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]*domain.Account // keyed by user ID

	CreateFunc               func(ctx context.Context, account *domain.Account) error
	GetByIDFunc              func(ctx context.Context, id int64) (*domain.Account, error)
	GetByUserIDFunc          func(ctx context.Context, userID int64) (*domain.Account, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID int64) (*domain.Account, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.UserID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	m.nextID++
	account.ID = m.nextID
	m.accounts[account.UserID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return nil, domain.ErrInvalidAccount
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[userID]; ok {
		return acc, nil
	}
	return nil, domain.ErrInvalidAccount
}

func (m *MockAccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID int64) (*domain.Account, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.Balance = balance
			acc.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrInvalidAccount
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	entries []*domain.Entry

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByAccountFunc func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
	SumByAccountFunc func(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) SumByAccount(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// Entries returns a snapshot of all recorded entries.
func (m *MockEntryRepository) Entries() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.entries...)
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	nextID    int64
	transfers []*domain.Transfer

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error
	GetByReferenceFunc func(ctx context.Context, reference string) (*domain.Transfer, error)
	ListByAccountFunc  func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transfer)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	transfer.ID = m.nextID
	m.transfers = append(m.transfers, transfer)
	return nil
}

func (m *MockTransferRepository) GetByReference(ctx context.Context, reference string) (*domain.Transfer, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transfers {
		if t.Reference == reference {
			return t, nil
		}
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// Transfers returns a snapshot of all recorded transfers.
func (m *MockTransferRepository) Transfers() []*domain.Transfer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transfer(nil), m.transfers...)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*domain.User // keyed by email

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetDetailsFunc func(ctx context.Context, userID int64) (*domain.UserDetails, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[email]; ok {
		found := *u
		return &found, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetDetails(ctx context.Context, userID int64) (*domain.UserDetails, error) {
	if m.GetDetailsFunc != nil {
		return m.GetDetailsFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	CheckConsistencyFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
	TotalsFunc           func(ctx context.Context) (int64, int64, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

func (m *MockLedgerRepository) Totals(ctx context.Context) (int64, int64, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx)
	}
	return 0, 0, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	mu         sync.Mutex
	committed  bool
	rolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

// Committed reports whether the transaction was committed.
func (m *MockTransaction) Committed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// RolledBack reports whether the transaction was rolled back before commit.
func (m *MockTransaction) RolledBack() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rolledBack
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu   sync.Mutex
	last *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &MockTransaction{}
	return m.last, nil
}

// LastTransaction returns the most recently begun transaction.
func (m *MockTransactionManager) LastTransaction() *MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// MockReferenceGenerator is a mock implementation of ReferenceGenerator.
type MockReferenceGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("ref-%03d", m.counter)
}
