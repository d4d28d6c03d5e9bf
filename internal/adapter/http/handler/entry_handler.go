package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintra/corebank/internal/adapter/http/dto"
	"github.com/fintra/corebank/internal/adapter/http/middleware"
	"github.com/fintra/corebank/internal/domain"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC   EntryService
	accountUC AccountService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService, accountUC AccountService) *EntryHandler {
	return &EntryHandler{
		entryUC:   entryUC,
		accountUC: accountUC,
	}
}

// ListByAccount lists entries for an account owned by the authenticated user.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.entryUC.ListByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
