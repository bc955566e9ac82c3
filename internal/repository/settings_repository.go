package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ratecraft/invoicing/internal/entity"
)

// PaymentSettings returns the owner's default payment method template.
// Owners who never saved settings get an empty template, not an error.
func (r *Repository) PaymentSettings(ctx context.Context, ownerID uuid.UUID) (entity.PaymentSettings, error) {
	const q = `SELECT owner_id, payment_methods, updated_at FROM payment_settings WHERE owner_id = $1`

	var (
		settings entity.PaymentSettings
		methods  []byte
	)

	err := r.db.QueryRow(ctx, q, ownerID).Scan(&settings.OwnerID, &methods, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.PaymentSettings{
				OwnerID:        ownerID,
				PaymentMethods: []entity.PaymentMethod{},
			}, nil
		}

		return entity.PaymentSettings{}, err
	}

	err = json.Unmarshal(methods, &settings.PaymentMethods)
	if err != nil {
		return entity.PaymentSettings{}, fmt.Errorf("unmarshal payment methods: %w", err)
	}

	return settings, nil
}

func (r *Repository) UpsertPaymentSettings(ctx context.Context, settings entity.PaymentSettings) (entity.PaymentSettings, error) {
	const q = `
	INSERT INTO payment_settings (owner_id, payment_methods, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (owner_id) DO UPDATE
	SET payment_methods = $2, updated_at = $3
	`

	methods, err := json.Marshal(orEmptyPaymentMethods(settings.PaymentMethods))
	if err != nil {
		return entity.PaymentSettings{}, fmt.Errorf("marshal payment methods: %w", err)
	}

	_, err = r.db.Exec(ctx, q, settings.OwnerID, methods, settings.UpdatedAt)
	if err != nil {
		return entity.PaymentSettings{}, err
	}

	return settings, nil
}
