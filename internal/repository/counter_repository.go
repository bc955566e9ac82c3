package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// NextNumber returns the ordinal a subsequent allocation would produce,
// without mutating the counter. A missing counter row reads as zero.
func (r *Repository) NextNumber(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	const q = `SELECT last_number FROM invoice_counters WHERE owner_id = $1`

	var lastNumber int64

	err := r.db.QueryRow(ctx, q, ownerID).Scan(&lastNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}

		return 0, err
	}

	return lastNumber + 1, nil
}

// AllocateNumber increments and returns the owner's counter in a single
// statement. The read-modify-write happens inside Postgres, so concurrent
// allocations for the same owner can never observe the same value.
func (r *Repository) AllocateNumber(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	const q = `
	INSERT INTO invoice_counters (owner_id, last_number, updated_at)
	VALUES ($1, 1, $2)
	ON CONFLICT (owner_id) DO UPDATE
	SET last_number = invoice_counters.last_number + 1, updated_at = $2
	RETURNING last_number
	`

	var number int64

	err := r.db.QueryRow(ctx, q, ownerID, time.Now()).Scan(&number)
	if err != nil {
		return 0, err
	}

	return number, nil
}

// ObserveNumber raises the counter to at least n, so allocations never
// collide with an externally supplied invoice number.
func (r *Repository) ObserveNumber(ctx context.Context, ownerID uuid.UUID, n int64) error {
	const q = `
	INSERT INTO invoice_counters (owner_id, last_number, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (owner_id) DO UPDATE
	SET last_number = GREATEST(invoice_counters.last_number, $2), updated_at = $3
	`

	_, err := r.db.Exec(ctx, q, ownerID, n, time.Now())
	if err != nil {
		return err
	}

	return nil
}
