package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrAmountTooPrecise = errors.New("amount must have at most 2 decimal places")
	ErrNegativeOpening  = errors.New("opening balance cannot be negative")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooWeak  = errors.New("password does not meet requirements")
	ErrInvalidName      = errors.New("invalid name")
)

// Validation constants
const (
	MaxTransferAmount = "1000000000" // 1 billion
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount validates a transaction or transfer amount: positive, at
// most two decimal places, below the system maximum.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -2 {
		return ErrAmountTooPrecise
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateOpeningBalance validates the optional opening balance of a new
// account. Zero is allowed; negative is not.
func ValidateOpeningBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeOpening
	}

	if balance.Exponent() < -2 {
		return ErrAmountTooPrecise
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidateName validates a first or last name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" || len(name) > MaxNameLength {
		return ErrInvalidName
	}

	return nil
}

// ValidatePagination normalizes pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const (
		defaultPageSize = 20
		maxPageSize     = 100
	)

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
