package repository

const (
	selectInvoice = `SELECT
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
	FROM invoices`
)
