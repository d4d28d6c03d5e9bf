package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/infrastructure/metrics"
)

// LedgerUseCase handles ledger-wide and per-account audit operations.
type LedgerUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	ledgerRepo LedgerRepository,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// ConsistencyReport summarizes the ledger-wide audit check.
type ConsistencyReport struct {
	Consistent    bool
	BalanceDrift  decimal.Decimal
	EntryTotal    decimal.Decimal
	AccountCount  int64
	TransferCount int64
}

// CheckConsistency verifies that, across all accounts, the total movement away
// from opening balances equals the total of all entries. Every committed
// mutation writes both sides in one transaction, so any difference means
// corruption.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	drift, entryTotal, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		uc.logger.Error().Err(err).Msg("consistency check failed")
		uc.recordCheck("error")
		return nil, domain.ErrStorage
	}

	accounts, transfers, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		uc.logger.Error().Err(err).Msg("ledger totals failed")
		uc.recordCheck("error")
		return nil, domain.ErrStorage
	}

	report := &ConsistencyReport{
		Consistent:    drift.Equal(entryTotal),
		BalanceDrift:  drift,
		EntryTotal:    entryTotal,
		AccountCount:  accounts,
		TransferCount: transfers,
	}

	if report.Consistent {
		uc.recordCheck("consistent")
	} else {
		uc.logger.Error().
			Str("balance_drift", drift.String()).
			Str("entry_total", entryTotal.String()).
			Msg("ledger inconsistency detected")
		uc.recordCheck("inconsistent")
	}

	return report, nil
}

// AccountAudit reports whether a single account's balance reconciles with its
// opening balance plus the signed sum of its entries.
type AccountAudit struct {
	AccountID      int64
	Consistent     bool
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	EntryTotal     decimal.Decimal
}

// AuditAccount checks one account against its ledger entries.
func (uc *LedgerUseCase) AuditAccount(ctx context.Context, accountID int64) (*AccountAudit, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAccount) {
			return nil, domain.ErrInvalidAccount
		}

		uc.logger.Error().Err(err).Int64("account_id", accountID).Msg("account lookup failed")

		return nil, domain.ErrStorage
	}

	entryTotal, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		uc.logger.Error().Err(err).Int64("account_id", accountID).Msg("entry sum failed")
		return nil, domain.ErrStorage
	}

	audit := &AccountAudit{
		AccountID:      accountID,
		Consistent:     account.Balance.Equal(account.OpeningBalance.Add(entryTotal)),
		Balance:        account.Balance,
		OpeningBalance: account.OpeningBalance,
		EntryTotal:     entryTotal,
	}

	if !audit.Consistent {
		uc.logger.Error().
			Int64("account_id", accountID).
			Str("balance", account.Balance.String()).
			Str("opening_balance", account.OpeningBalance.String()).
			Str("entry_total", entryTotal.String()).
			Msg("account inconsistency detected")
	}

	return audit, nil
}

func (uc *LedgerUseCase) recordCheck(result string) {
	if uc.metrics != nil {
		uc.metrics.ConsistencyChecks.WithLabelValues(result).Inc()
	}
}
