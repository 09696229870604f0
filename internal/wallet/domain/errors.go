package domain

import "errors"

var (
	// Admission errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("kind must be CREDIT or DEBIT")
	ErrUnknownOwner        = errors.New("owner not recognized by identity service")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Dependency errors
	ErrIdentityUnreachable = errors.New("identity service unreachable")
	ErrStorage             = errors.New("storage failure")
)
