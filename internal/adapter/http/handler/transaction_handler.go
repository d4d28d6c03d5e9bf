package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fintra/corebank/internal/adapter/http/dto"
	"github.com/fintra/corebank/internal/adapter/http/middleware"
	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Apply(ctx context.Context, input usecase.ApplyTransactionInput) (*domain.Entry, error)
}

// TransactionHandler handles fund and withdraw requests against the
// authenticated user's account.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Fund credits the caller's account.
func (h *TransactionHandler) Fund(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.DirectionCredit)
}

// Withdraw debits the caller's account.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.DirectionDebit)
}

func (h *TransactionHandler) apply(w http.ResponseWriter, r *http.Request, direction domain.Direction) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.transactionUC.Apply(r.Context(), usecase.ApplyTransactionInput{
		UserID:    user.ID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Direction: direction,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}
