package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fintra/corebank/internal/adapter/http/middleware"
	"github.com/fintra/corebank/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
	AuditAccount(ctx context.Context, accountID int64) (*usecase.AccountAudit, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC  LedgerService
	accountUC AccountService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, accountUC AccountService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, accountUC: accountUC}
}

// CheckConsistency checks if the ledger is consistent.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	body := map[string]any{
		"consistent":    report.Consistent,
		"balance_drift": report.BalanceDrift.String(),
		"entry_total":   report.EntryTotal.String(),
		"accounts":      report.AccountCount,
		"transfers":     report.TransferCount,
	}

	if !report.Consistent {
		body["status"] = "inconsistent"
		writeJSON(w, http.StatusConflict, body)
		return
	}

	body["status"] = "consistent"
	writeJSON(w, http.StatusOK, body)
}

// AuditAccount reconciles the caller's account against its ledger entries.
func (h *LedgerHandler) AuditAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	accountID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id", err.Error())
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

	audit, err := h.ledgerUC.AuditAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to audit account", err.Error())
		return
	}

	body := map[string]any{
		"account_id":      audit.AccountID,
		"consistent":      audit.Consistent,
		"balance":         audit.Balance.String(),
		"opening_balance": audit.OpeningBalance.String(),
		"entry_total":     audit.EntryTotal.String(),
	}

	if !audit.Consistent {
		writeJSON(w, http.StatusConflict, body)
		return
	}

	writeJSON(w, http.StatusOK, body)
}
