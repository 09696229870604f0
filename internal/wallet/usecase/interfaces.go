package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/wallet/domain"
)

// EntryRepository defines data access for ledger entries. Entries are
// append-only: there is no update or delete.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	ListByOwner(ctx context.Context, ownerID string, kind *domain.EntryKind, limit, offset int) ([]*domain.Entry, error)
	SumByOwner(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

// ValidationResult is the normalized outcome of an identity check.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// IdentityValidator checks that an owner exists in the identity service.
// Implementations return a non-nil error only when the identity service
// could not be reached; a reachable-but-negative answer is reported through
// ValidationResult. Either way a caller must treat anything other than
// Valid=true as a rejection.
type IdentityValidator interface {
	Validate(ctx context.Context, ownerID string) (ValidationResult, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
