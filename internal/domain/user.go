package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered customer. Each user owns exactly one account.
type User struct {
	ID             int64
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserDetails is the read model for a user joined with their account balance.
type UserDetails struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	AccountID int64
	Balance   decimal.Decimal
}
