package domain

import "errors"

var (
	// Account errors
	ErrAccountAlreadyExists = errors.New("account already exists for user")
	ErrInvalidAccount       = errors.New("invalid account")
	ErrInsufficientBalance  = errors.New("insufficient balance")

	// Transfer errors
	ErrSelfTransfer     = errors.New("cannot transfer to self")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDirection = errors.New("direction must be CREDIT or DEBIT")
	ErrTransferNotFound = errors.New("transfer not found")

	// User errors
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email/password")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// ErrStorage masks any failure of the underlying store. The diagnostic
	// detail is logged where the failure happens; callers only ever see this
	// stable error.
	ErrStorage = errors.New("storage error")
)
