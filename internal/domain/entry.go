package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single immutable ledger entry. Amount is signed: positive for
// credits, negative for debits. Entries are only ever appended, in the same
// transaction as the balance change they mirror.
type Entry struct {
	ID        int64
	AccountID int64
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Direction indicates whether a transaction credits or debits an account.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// IsValid checks if the direction is one of CREDIT or DEBIT.
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// SignedAmount returns the entry amount for a positive transaction amount:
// the amount itself for a credit, its negation for a debit.
func (d Direction) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if d == DirectionDebit {
		return amount.Neg()
	}
	return amount
}
