package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind is the direction of a ledger entry. The set is closed:
// anything outside CREDIT/DEBIT is a validation error, not a new variant.
type EntryKind string

const (
	KindCredit EntryKind = "CREDIT"
	KindDebit  EntryKind = "DEBIT"
)

// IsValid checks if the kind belongs to the closed set.
func (k EntryKind) IsValid() bool {
	switch k {
	case KindCredit, KindDebit:
		return true
	}
	return false
}

// Signed returns amount with the direction applied: positive for credits,
// negative for debits. Callers must validate the kind first.
func (k EntryKind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == KindDebit {
		return amount.Neg()
	}
	return amount
}

// Entry represents a single immutable ledger entry for one owner.
// Amount is always strictly positive; direction is carried by Kind alone.
// UpdatedAt is set once at creation and never touched again.
type Entry struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	OwnerID   string
	Kind      EntryKind
	Amount    decimal.Decimal
}

// IsCredit reports whether the entry increases the owner's balance.
func (e *Entry) IsCredit() bool {
	return e.Kind == KindCredit
}

// IsDebit reports whether the entry decreases the owner's balance.
func (e *Entry) IsDebit() bool {
	return e.Kind == KindDebit
}
