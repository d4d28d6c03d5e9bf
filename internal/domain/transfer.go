package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer records one completed move of funds between two accounts. The
// reference is the public identifier handed back to API clients.
type Transfer struct {
	ID            int64
	Reference     string
	FromAccountID int64
	ToAccountID   int64
	SenderID      int64
	RecipientID   int64
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Validate validates a transfer request before any transaction is opened.
func (t *Transfer) Validate() error {
	if t.SenderID == t.RecipientID {
		return ErrSelfTransfer
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
