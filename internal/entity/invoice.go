package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values. Any status
// may transition to any other, so this is the only check invoices need.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}

	return false
}

type InvoiceStyle string

const (
	InvoiceStyleClassic InvoiceStyle = "classic"
	InvoiceStyleCompact InvoiceStyle = "compact"
)

func (s InvoiceStyle) String() string {
	return string(s)
}

func (s InvoiceStyle) IsValid() bool {
	switch s {
	case InvoiceStyleClassic, InvoiceStyleCompact:
		return true
	}

	return false
}

type Invoice struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Number         string // Unique per owner, "RC-IN-NNNN".
	ClientName     string
	SubmittedDate  time.Time
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	LineItems      []LineItem
	Adjustments    []Adjustment
	PaymentMethods []PaymentMethod
	Subtotal       decimal.Decimal
	Total          decimal.Decimal
	Status         InvoiceStatus
	Style          InvoiceStyle
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPeriod reports whether the billing period should be displayed.
// Both ends must be present.
func (i Invoice) HasPeriod() bool {
	return i.PeriodStart != nil && i.PeriodEnd != nil
}

// LineItem is a value object owned by its invoice. Total is auto-computed in
// the editor but stays independently editable, so it is persisted as given.
type LineItem struct {
	Description string          `json:"description"`
	Hours       int             `json:"hours"`
	Minutes     int             `json:"minutes"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
	Link        string          `json:"link"`
	LinkLabel   string          `json:"link_label"`
	Note        string          `json:"note"`
}

// Adjustment is a signed correction applied after the subtotal.
// Negative amounts are discounts.
type Adjustment struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type PaymentMethodType string

const (
	PaymentMethodWise         PaymentMethodType = "wise"
	PaymentMethodPayPal       PaymentMethodType = "paypal"
	PaymentMethodWireTransfer PaymentMethodType = "wire_transfer"
	PaymentMethodOther        PaymentMethodType = "other"
)

func (t PaymentMethodType) String() string {
	return string(t)
}

func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentMethodWise, PaymentMethodPayPal, PaymentMethodWireTransfer, PaymentMethodOther:
		return true
	}

	return false
}

// PaymentMethod is a denormalized copy stored on the invoice. Later edits to
// the owner's payment settings never change saved invoices.
type PaymentMethod struct {
	Type          PaymentMethodType `json:"type"`
	Label         string            `json:"label"`
	Value         string            `json:"value"`
	IsLink        bool              `json:"is_link"`
	QRCodeURL     string            `json:"qr_code_url"`
	QRCodeData    string            `json:"qr_code_data"` // Uploaded image as data URL, wins over QRCodeURL.
	BankName      string            `json:"bank_name"`
	AccountNumber string            `json:"account_number"`
	SwiftCode     string            `json:"swift_code"`
	RoutingNumber string            `json:"routing_number"`
}

// QRImage returns the QR source to display, preferring uploaded data.
func (p PaymentMethod) QRImage() string {
	if p.QRCodeData != "" {
		return p.QRCodeData
	}

	return p.QRCodeURL
}

// PaymentSettings is the per-owner default payment method template copied
// into new invoices at creation time.
type PaymentSettings struct {
	OwnerID        uuid.UUID
	PaymentMethods []PaymentMethod
	UpdatedAt      time.Time
}

type InvoiceFilter struct {
	Status  *InvoiceStatus
	Page    uint64
	Limit   uint64
	SortBy  InvoiceSortCol
	OrderBy OrderByCol
}

type InvoiceSortCol string

const (
	SortByCreatedAt     InvoiceSortCol = "created_at"
	SortBySubmittedDate InvoiceSortCol = "submitted_date"
	SortByTotal         InvoiceSortCol = "total"
)

func (c InvoiceSortCol) String() string {
	return string(c)
}

func (c InvoiceSortCol) IsValid() bool {
	switch c {
	case SortByCreatedAt, SortBySubmittedDate, SortByTotal:
		return true
	}

	return false
}

type OrderByCol string

const (
	DESC OrderByCol = "desc"
	ASC  OrderByCol = "asc"
)

func (o OrderByCol) String() string {
	return string(o)
}

func (o OrderByCol) IsValid() bool {
	switch o {
	case DESC, ASC:
		return true
	}

	return false
}
