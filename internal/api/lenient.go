package api

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money decodes an amount sent either as a JSON number or a numeric string.
// Anything unparseable coerces to zero instead of failing the request, which
// matches how the invoice editor treats half-typed values.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		m.Decimal = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}

	m.Decimal = d

	return nil
}

// Count is an integer with the same never-fail coercion as Money.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*c = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = 0
		return nil
	}

	*c = Count(f)

	return nil
}
