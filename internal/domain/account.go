package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the balance for exactly one user. The opening balance is kept
// alongside the running balance so the audit invariant
// balance == opening_balance + sum(entries) stays checkable.
type Account struct {
	ID             int64
	UserID         int64
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateDebit checks if the account can be debited by amount without the
// balance going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
