package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/wallet/domain"
)

// TransactionUseCase handles the admission pipeline for ledger entries and
// the derived-balance queries.
type TransactionUseCase struct {
	entryRepo EntryRepository
	identity  IdentityValidator
	idGen     IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(entryRepo EntryRepository, identity IdentityValidator, idGen IDGenerator) *TransactionUseCase {
	return &TransactionUseCase{
		entryRepo: entryRepo,
		identity:  identity,
		idGen:     idGen,
	}
}

// CreateTransactionInput represents input for creating an entry.
type CreateTransactionInput struct {
	OwnerID string
	Kind    domain.EntryKind
	Amount  decimal.Decimal
}

// CreateTransaction runs the admission pipeline: shape validation, identity
// validation, balance check for debits, then the insert. The insert is the
// only mutating step, so a failure anywhere leaves no partial state.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateKind(input.Kind); err != nil {
		return nil, err
	}

	result, err := uc.identity.Validate(ctx, input.OwnerID)
	if err != nil {
		// Fail closed: an owner we could not confirm is an owner we reject.
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOwner, result.Reason)
	}

	if input.Kind == domain.KindDebit {
		balance, err := uc.GetBalance(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}

		// The balance read and the insert below are separate statements;
		// concurrent debits for the same owner can both pass this check.
		if balance.LessThan(input.Amount) {
			return nil, domain.ErrInsufficientBalance
		}
	}

	now := time.Now().UTC()
	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Kind:      input.Kind,
		Amount:    input.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListTransactionsInput represents input for listing entries.
type ListTransactionsInput struct {
	OwnerID string
	Kind    *domain.EntryKind
	Limit   int
	Offset  int
}

// ListTransactions lists an owner's entries, newest first, optionally
// restricted to one kind.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Entry, error) {
	if input.Kind != nil {
		if err := domain.ValidateKind(*input.Kind); err != nil {
			return nil, err
		}
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByOwner(ctx, input.OwnerID, input.Kind, limit, offset)
}

// GetBalance derives the owner's balance from the entry history. This is
// the single aggregate definition: the debit admission check calls it too,
// so both sites cannot drift apart.
func (uc *TransactionUseCase) GetBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	return uc.entryRepo.SumByOwner(ctx, ownerID)
}
