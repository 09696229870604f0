package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/infrastructure/metrics"
	"github.com/akarpov/walletsvc/internal/middleware"
	"github.com/akarpov/walletsvc/internal/wallet/adapter/http/dto"
	"github.com/akarpov/walletsvc/internal/wallet/domain"
	"github.com/akarpov/walletsvc/internal/wallet/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Entry, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Entry, error)
	GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create creates a new ledger entry for the authenticated caller.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.transactionUC.CreateTransaction(r.Context(), req.ToUseCaseInput(claims.UserID))
	if err != nil {
		metrics.TransactionErrors.WithLabelValues(errorType(err)).Inc()
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	metrics.TransactionsCreated.WithLabelValues(string(entry.Kind)).Inc()
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(entry))
}

// List lists the authenticated caller's entries, newest first, optionally
// filtered by kind via the ?kind= query parameter.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var kind *domain.EntryKind
	if k := r.URL.Query().Get("kind"); k != "" {
		ek := domain.EntryKind(k)
		kind = &ek
	}

	entries, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		OwnerID: claims.UserID,
		Kind:    kind,
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(entries))
}

// GetBalance returns the authenticated caller's derived balance.
func (h *TransactionHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.transactionUC.GetBalance(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		OwnerID: claims.UserID,
		Balance: balance,
	})
}
