package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/akarpov/walletsvc/internal/wallet/domain"
)

// EntryRepository implements usecase.EntryRepository on PostgreSQL. The
// entries table is append-only: this type exposes no update or delete.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create inserts a new immutable entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO entries (id, owner_id, amount, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.Amount,
		entry.Kind,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert entry: %v", domain.ErrStorage, err)
	}

	return nil
}

// ListByOwner retrieves an owner's entries, newest first, optionally
// restricted to one kind. An owner with no history yields an empty slice.
func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string, kind *domain.EntryKind, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT id, owner_id, amount, kind, created_at, updated_at
		FROM entries
		WHERE owner_id = $1 AND ($2::text IS NULL OR kind = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	var kindFilter *string
	if kind != nil {
		s := string(*kind)
		kindFilter = &s
	}

	rows, err := r.pool.Query(ctx, query, ownerID, kindFilter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		var entry domain.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.OwnerID,
			&entry.Amount,
			&entry.Kind,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", domain.ErrStorage, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", domain.ErrStorage, err)
	}

	return entries, nil
}

// SumByOwner computes the owner's balance as a single aggregate in SQL:
// credits minus debits over the full entry history. It never transfers the
// history to the caller.
func (r *EntryRepository) SumByOwner(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(
			SUM(CASE WHEN kind = 'CREDIT' THEN amount ELSE -amount END),
			0
		)
		FROM entries
		WHERE owner_id = $1
	`

	var balance decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("%w: sum entries: %v", domain.ErrStorage, err)
	}

	return balance, nil
}
