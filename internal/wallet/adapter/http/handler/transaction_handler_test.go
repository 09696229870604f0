package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/infrastructure/auth"
	"github.com/akarpov/walletsvc/internal/middleware"
	"github.com/akarpov/walletsvc/internal/wallet/adapter/http/dto"
	"github.com/akarpov/walletsvc/internal/wallet/domain"
	"github.com/akarpov/walletsvc/internal/wallet/usecase"
)

type transactionServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Entry, error)
	listFn    func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Entry, error)
	balanceFn func(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

func (s *transactionServiceStub) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Entry, error) {
	return s.createFn(ctx, input)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Entry, error) {
	return s.listFn(ctx, input)
}

func (s *transactionServiceStub) GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, ownerID)
}

func authedRequest(method, target string, body []byte, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, &auth.Claims{UserID: userID})
	return req.WithContext(ctx)
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	entry := &domain.Entry{
		ID:      "01H1",
		OwnerID: "u1",
		Kind:    domain.KindCredit,
		Amount:  decimal.NewFromInt(100),
	}

	var captured usecase.CreateTransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Entry, error) {
			captured = input
			return entry, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(100),
		Kind:   "CREDIT",
	})

	req := authedRequest(http.MethodPost, "/api/v1/transactions", body, "u1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OwnerID != "u1" {
		t.Fatalf("owner must come from the token, got %q", captured.OwnerID)
	}
	if captured.Kind != domain.KindCredit {
		t.Fatalf("expected CREDIT, got %q", captured.Kind)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "01H1" {
		t.Fatalf("expected entry ID 01H1, got %s", resp.ID)
	}
}

func TestTransactionHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid kind", domain.ErrInvalidKind, http.StatusBadRequest},
		{"unknown owner", domain.ErrUnknownOwner, http.StatusNotFound},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusConflict},
		{"identity unreachable", domain.ErrIdentityUnreachable, http.StatusBadGateway},
		{"storage", domain.ErrStorage, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(&transactionServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Entry, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.CreateTransactionRequest{
				Amount: decimal.NewFromInt(10),
				Kind:   "DEBIT",
			})

			req := authedRequest(http.MethodPost, "/api/v1/transactions", body, "u1")
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestTransactionHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestTransactionHandler_Create_BadBody(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{})

	req := authedRequest(http.MethodPost, "/api/v1/transactions", []byte("{not json"), "u1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_List_KindFilter(t *testing.T) {
	var captured usecase.ListTransactionsInput
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Entry, error) {
			captured = input
			return []*domain.Entry{
				{ID: "e1", OwnerID: "u1", Kind: domain.KindCredit, Amount: decimal.NewFromInt(100)},
			}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/transactions?kind=CREDIT&limit=10", nil, "u1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Kind == nil || *captured.Kind != domain.KindCredit {
		t.Fatalf("expected CREDIT filter, got %v", captured.Kind)
	}
	if captured.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", captured.Limit)
	}

	var resp []*dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp))
	}
}

func TestTransactionHandler_GetBalance(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		balanceFn: func(ctx context.Context, ownerID string) (decimal.Decimal, error) {
			if ownerID != "u1" {
				t.Fatalf("expected owner u1, got %q", ownerID)
			}
			return decimal.NewFromInt(60), nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/balance", nil, "u1")
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected balance 60, got %s", resp.Balance)
	}
}
