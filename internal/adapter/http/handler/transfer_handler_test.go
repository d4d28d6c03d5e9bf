package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fintra/corebank/internal/adapter/http/dto"
	"github.com/fintra/corebank/internal/domain"
	"github.com/fintra/corebank/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error)
	getFn      func(ctx context.Context, reference string) (*domain.Transfer, error)
	listFn     func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error)
}

func (s *transferServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error) {
	return s.transferFn(ctx, input)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, reference string) (*domain.Transfer, error) {
	return s.getFn(ctx, reference)
}

func (s *transferServiceStub) ListTransfersByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
	return s.listFn(ctx, accountID, limit, offset)
}

func TestTransferHandler_Create_Success(t *testing.T) {
	transfer := &domain.Transfer{
		Reference:   "01HXYZABCDEF",
		SenderID:    7,
		RecipientID: 9,
		Amount:      decimal.RequireFromString("25.50"),
	}

	var captured usecase.TransferInput
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error) {
			captured = input
			return transfer, nil
		},
	}, &accountServiceStub{})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		RecipientID: 9,
		Amount:      decimal.RequireFromString("25.50"),
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	req = withUser(req, 7, "alice@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.SenderID != 7 || captured.RecipientID != 9 {
		t.Fatalf("expected sender from token and recipient from body, got %+v", captured)
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reference != "01HXYZABCDEF" {
		t.Fatalf("expected reference 01HXYZABCDEF, got %s", resp.Reference)
	}
}

func TestTransferHandler_Create_InsufficientBalance(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error) {
			return nil, domain.ErrInsufficientBalance
		},
	}, &accountServiceStub{})

	body, _ := json.Marshal(dto.CreateTransferRequest{RecipientID: 9, Amount: decimal.NewFromInt(100)})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	req = withUser(req, 7, "alice@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_SelfTransfer(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transfer, error) {
			return nil, domain.ErrSelfTransfer
		},
	}, &accountServiceStub{})

	body, _ := json.Marshal(dto.CreateTransferRequest{RecipientID: 7, Amount: decimal.NewFromInt(10)})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	req = withUser(req, 7, "alice@example.com")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Get(t *testing.T) {
	transfer := &domain.Transfer{Reference: "01HXYZABCDEF", SenderID: 7, RecipientID: 9}
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, reference string) (*domain.Transfer, error) {
			if reference != "01HXYZABCDEF" {
				t.Fatalf("expected reference 01HXYZABCDEF, got %s", reference)
			}
			return transfer, nil
		},
	}, &accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/transfers/01HXYZABCDEF", nil)
	req = withUser(req, 7, "alice@example.com")
	req = setChiURLParam(req, "reference", "01HXYZABCDEF")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTransferHandler_Get_NotParticipant(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, reference string) (*domain.Transfer, error) {
			return &domain.Transfer{Reference: "01HXYZABCDEF", SenderID: 1, RecipientID: 2}, nil
		},
	}, &accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/transfers/01HXYZABCDEF", nil)
	req = withUser(req, 7, "alice@example.com")
	req = setChiURLParam(req, "reference", "01HXYZABCDEF")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestTransferHandler_Get_NotFound(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, reference string) (*domain.Transfer, error) {
			return nil, domain.ErrTransferNotFound
		},
	}, &accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/transfers/missing", nil)
	req = withUser(req, 7, "alice@example.com")
	req = setChiURLParam(req, "reference", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransferHandler_ListByAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		listFn: func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
			if accountID != 1 || limit != 5 || offset != 2 {
				t.Fatalf("expected accountID=1 limit=5 offset=2, got %d %d %d", accountID, limit, offset)
			}
			return []*domain.Transfer{{Reference: "a"}, {Reference: "b"}}, nil
		},
	}, &accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: 1, UserID: 7}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/1/transfers?limit=5&offset=2", nil)
	req = withUser(req, 7, "alice@example.com")
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(resp))
	}
}

func TestTransferHandler_ListByAccount_OtherUsersAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		listFn: func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Transfer, error) {
			t.Fatal("ListTransfersByAccount should not be called for foreign accounts")
			return nil, nil
		},
	}, &accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: 1, UserID: 99}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/1/transfers", nil)
	req = withUser(req, 7, "alice@example.com")
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
