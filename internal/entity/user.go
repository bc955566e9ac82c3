package entity

import (
	"github.com/gofrs/uuid/v5"
)

// User is the authenticated owner of invoices, counters and payment settings.
// Session issuance lives in the auth service; only the resolved identity and
// the preferred invoice template travel here.
type User struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	InvoiceTemplate InvoiceStyle
}
