package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccountRequest represents a request to open an account. The opening
// balance is optional and defaults to zero.
type CreateAccountRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input for the authenticated user.
func (r *CreateAccountRequest) ToUseCaseInput(userID int64) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:         userID,
		OpeningBalance: r.OpeningBalance,
	}
}

// TransactionRequest represents a fund or withdraw request. AccountID is
// optional; when present it must match the caller's account.
type TransactionRequest struct {
	AccountID int64           `json:"account_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// CreateTransferRequest represents a request to transfer funds to another
// user.
type CreateTransferRequest struct {
	RecipientID int64           `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the authenticated sender.
func (r *CreateTransferRequest) ToUseCaseInput(senderID int64) usecase.TransferInput {
	return usecase.TransferInput{
		SenderID:    senderID,
		RecipientID: r.RecipientID,
		Amount:      r.Amount,
	}
}
