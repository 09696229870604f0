package domain

import "time"

// User represents an identity known to the identity service. Its existence
// is what the wallet service validates before committing a ledger entry.
type User struct {
	ID             string
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
