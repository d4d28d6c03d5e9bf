package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintra/corebank/internal/adapter/http/dto"
	"github.com/fintra/corebank/internal/adapter/http/middleware"
	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error)
	GetTransfer(ctx context.Context, reference string) (*domain.Transfer, error)
	ListTransfersByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	accountUC  AccountService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService, accountUC AccountService) *TransferHandler {
	return &TransferHandler{
		transferUC: transferUC,
		accountUC:  accountUC,
	}
}

// Create moves funds from the authenticated user to the recipient.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transfer, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get retrieves a transfer by reference. Only the sender or recipient can
// read it.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing transfer reference", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), reference)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transfer", err.Error())
		return
	}

	if transfer.SenderID != user.ID && transfer.RecipientID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "transfer belongs to other users")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByAccount lists transfers touching an account owned by the
// authenticated user.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	accountID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}
	if account.UserID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "account belongs to another user")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transfers, err := h.transferUC.ListTransfersByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
