package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/wallet/domain"
)

// TransactionResponse represents an entry in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain entry to a response.
func TransactionFromDomain(e *domain.Entry) *TransactionResponse {
	return &TransactionResponse{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Amount:    e.Amount,
		Kind:      string(e.Kind),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain entries to responses.
func TransactionsFromDomain(entries []*domain.Entry) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = TransactionFromDomain(e)
	}
	return result
}

// BalanceResponse represents a derived balance in API responses.
type BalanceResponse struct {
	OwnerID string          `json:"owner_id"`
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
