package dto

import (
	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/wallet/domain"
	"github.com/akarpov/walletsvc/internal/wallet/usecase"
)

// CreateTransactionRequest represents a request to create a ledger entry.
// The owner is never part of the body: it always comes from the
// authenticated caller's token.
type CreateTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Kind   string          `json:"kind"`
}

// ToUseCaseInput converts to use case input for the given owner.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		OwnerID: ownerID,
		Kind:    domain.EntryKind(r.Kind),
		Amount:  r.Amount,
	}
}
