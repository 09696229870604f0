package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxEntryAmount is the exclusive upper bound for a single entry (in
// decimal string form). Matches the NUMERIC(20,8) entries column: 12
// integer digits at most.
const MaxEntryAmount = "1000000000000" // 1 trillion, exclusive

// MaxEntryAmountScale is the maximum number of decimal places an amount
// may carry, matching the NUMERIC(20,8) entries column. Finer amounts
// would be rounded at insert and break the exact round-trip.
const MaxEntryAmountScale = 8

// ValidateAmount validates an entry amount: strictly positive, below the
// maximum, and no finer than the storage scale.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount must be below %s", ErrInvalidAmount, MaxEntryAmount)
	}

	if !amount.Equal(amount.Truncate(MaxEntryAmountScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, MaxEntryAmountScale)
	}

	return nil
}

// ValidateKind validates that the kind belongs to the closed set.
func ValidateKind(kind EntryKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidKind, string(kind))
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
