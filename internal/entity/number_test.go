package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ratecraft/invoicing/internal/entity"
)

func TestFormatInvoiceNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{n: 1, want: "RC-IN-0001"},
		{n: 42, want: "RC-IN-0042"},
		{n: 9999, want: "RC-IN-9999"},
		{n: 10000, want: "RC-IN-10000"},
		{n: 123456, want: "RC-IN-123456"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, entity.FormatInvoiceNumber(tt.n))
	}
}

func TestInvoiceNumberOrdinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number string
		want   int64
		ok     bool
	}{
		{number: "RC-IN-0042", want: 42, ok: true},
		{number: "RC-IN-10000", want: 10000, ok: true},
		{number: "INV-2024-007", want: 2024007, ok: true},
		{number: "7", want: 7, ok: true},
		{number: "no digits here", ok: false},
		{number: "", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.number, func(t *testing.T) {
			t.Parallel()

			n, ok := entity.InvoiceNumberOrdinal(tt.number)
			require.Equal(t, tt.ok, ok)

			if tt.ok {
				require.Equal(t, tt.want, n)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	// Formatting then parsing returns the original ordinal.
	for _, n := range []int64{1, 9, 99, 9999, 10000, 54321} {
		got, ok := entity.InvoiceNumberOrdinal(entity.FormatInvoiceNumber(n))
		require.True(t, ok)
		require.Equal(t, n, got)
	}
}
