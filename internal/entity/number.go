package entity

import (
	"fmt"
	"strconv"
	"strings"
)

const invoiceNumberPrefix = "RC-IN-"

// FormatInvoiceNumber renders an ordinal as "RC-IN-NNNN", zero-padded to four
// digits. Ordinals of 10000 and above simply widen.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%s%04d", invoiceNumberPrefix, n)
}

// InvoiceNumberOrdinal extracts the numeric part of an externally supplied
// invoice number by concatenating its digits, e.g. "RC-IN-0042" -> 42.
// ok is false when the string contains no digits.
func InvoiceNumberOrdinal(number string) (n int64, ok bool) {
	var digits strings.Builder

	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}
