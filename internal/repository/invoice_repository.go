package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ratecraft/invoicing/internal/entity"
)

const pgUniqueViolation = "23505"

func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	const q = `
	INSERT INTO invoices (
		id,
		owner_id,
		invoice_number,
		client_name,
		submitted_date,
		period_start,
		period_end,
		line_items,
		adjustments,
		payment_methods,
		subtotal,
		total,
		status,
		invoice_style,
		notes,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	lineItems, adjustments, paymentMethods, err := marshalEmbedded(inv)
	if err != nil {
		return entity.Invoice{}, err
	}

	_, err = r.db.Exec(
		ctx,
		q,
		inv.ID,
		inv.OwnerID,
		inv.Number,
		inv.ClientName,
		inv.SubmittedDate,
		inv.PeriodStart,
		inv.PeriodEnd,
		lineItems,
		adjustments,
		paymentMethods,
		inv.Subtotal,
		inv.Total,
		inv.Status,
		inv.Style,
		inv.Notes,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return entity.Invoice{}, fmt.Errorf("invoice number %q: %w", inv.Number, entity.ErrDuplicateNumber)
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}

// UpdateInvoice overwrites the mutable fields of an owner's invoice. Field
// fallback for partial updates happens in the service; the row written here
// is always complete. The invoice number is immutable.
func (r *Repository) UpdateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	const q = `
	UPDATE invoices SET
		client_name = $1,
		submitted_date = $2,
		period_start = $3,
		period_end = $4,
		line_items = $5,
		adjustments = $6,
		payment_methods = $7,
		subtotal = $8,
		total = $9,
		status = $10,
		invoice_style = $11,
		notes = $12,
		updated_at = $13
	WHERE id = $14 AND owner_id = $15
	`

	lineItems, adjustments, paymentMethods, err := marshalEmbedded(inv)
	if err != nil {
		return entity.Invoice{}, err
	}

	result, err := r.db.Exec(
		ctx,
		q,
		inv.ClientName,
		inv.SubmittedDate,
		inv.PeriodStart,
		inv.PeriodEnd,
		lineItems,
		adjustments,
		paymentMethods,
		inv.Subtotal,
		inv.Total,
		inv.Status,
		inv.Style,
		inv.Notes,
		inv.UpdatedAt,
		inv.ID,
		inv.OwnerID,
	)
	if err != nil {
		return entity.Invoice{}, err
	}

	if result.RowsAffected() == 0 {
		return entity.Invoice{}, entity.ErrNotFound
	}

	return inv, nil
}

func (r *Repository) DeleteInvoice(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `DELETE FROM invoices WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// Invoice returns the owner's invoice. A wrong-owner id yields the same
// ErrNotFound as a missing one.
func (r *Repository) Invoice(ctx context.Context, id, ownerID uuid.UUID) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1 AND owner_id = $2"
	return scanInvoice(r.db.QueryRow(ctx, q, id, ownerID))
}

func (r *Repository) Invoices(
	ctx context.Context,
	ownerID uuid.UUID,
	f entity.InvoiceFilter,
) ([]entity.Invoice, int, error) {
	stmt := sq.Select(
		"id",
		"owner_id",
		"invoice_number",
		"client_name",
		"submitted_date",
		"period_start",
		"period_end",
		"line_items",
		"adjustments",
		"payment_methods",
		"subtotal",
		"total",
		"status",
		"invoice_style",
		"notes",
		"created_at",
		"updated_at",
		"COUNT(*) OVER() AS total_count",
	).From("invoices").Where(sq.Eq{"owner_id": ownerID}).PlaceholderFormat(sq.Dollar)

	if f.Status != nil {
		stmt = stmt.Where(sq.Eq{"status": *f.Status})
	}

	// Pages are 1-based; page zero would underflow the offset.
	page := f.Page
	if page == 0 {
		page = 1
	}

	stmt = stmt.
		Limit(f.Limit).
		Offset(page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("%s %s", f.SortBy, f.OrderBy))

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]entity.Invoice, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var (
			inv                                    entity.Invoice
			lineItems, adjustments, paymentMethods []byte
			count                                  int
		)

		err = rows.Scan(
			&inv.ID,
			&inv.OwnerID,
			&inv.Number,
			&inv.ClientName,
			&inv.SubmittedDate,
			&inv.PeriodStart,
			&inv.PeriodEnd,
			&lineItems,
			&adjustments,
			&paymentMethods,
			&inv.Subtotal,
			&inv.Total,
			&inv.Status,
			&inv.Style,
			&inv.Notes,
			&inv.CreatedAt,
			&inv.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		err = unmarshalEmbedded(&inv, lineItems, adjustments, paymentMethods)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		invoices = append(invoices, inv)
	}

	return invoices, totalCount, nil
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	var lineItems, adjustments, paymentMethods []byte

	err = row.Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.Number,
		&inv.ClientName,
		&inv.SubmittedDate,
		&inv.PeriodStart,
		&inv.PeriodEnd,
		&lineItems,
		&adjustments,
		&paymentMethods,
		&inv.Subtotal,
		&inv.Total,
		&inv.Status,
		&inv.Style,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	err = unmarshalEmbedded(&inv, lineItems, adjustments, paymentMethods)
	if err != nil {
		return entity.Invoice{}, err
	}

	return inv, nil
}

// marshalEmbedded encodes the value-object sequences as JSONB payloads.
// They have no identity of their own, so no extra tables.
func marshalEmbedded(inv entity.Invoice) (lineItems, adjustments, paymentMethods []byte, err error) {
	lineItems, err = json.Marshal(orEmptyLineItems(inv.LineItems))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal line items: %w", err)
	}

	adjustments, err = json.Marshal(orEmptyAdjustments(inv.Adjustments))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal adjustments: %w", err)
	}

	paymentMethods, err = json.Marshal(orEmptyPaymentMethods(inv.PaymentMethods))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal payment methods: %w", err)
	}

	return lineItems, adjustments, paymentMethods, nil
}

func unmarshalEmbedded(inv *entity.Invoice, lineItems, adjustments, paymentMethods []byte) error {
	err := json.Unmarshal(lineItems, &inv.LineItems)
	if err != nil {
		return fmt.Errorf("unmarshal line items: %w", err)
	}

	err = json.Unmarshal(adjustments, &inv.Adjustments)
	if err != nil {
		return fmt.Errorf("unmarshal adjustments: %w", err)
	}

	err = json.Unmarshal(paymentMethods, &inv.PaymentMethods)
	if err != nil {
		return fmt.Errorf("unmarshal payment methods: %w", err)
	}

	return nil
}

func orEmptyLineItems(items []entity.LineItem) []entity.LineItem {
	if items == nil {
		return []entity.LineItem{}
	}

	return items
}

func orEmptyAdjustments(adjustments []entity.Adjustment) []entity.Adjustment {
	if adjustments == nil {
		return []entity.Adjustment{}
	}

	return adjustments
}

func orEmptyPaymentMethods(methods []entity.PaymentMethod) []entity.PaymentMethod {
	if methods == nil {
		return []entity.PaymentMethod{}
	}

	return methods
}
