package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ratecraft/invoicing/internal/entity"
)

func TestLineItemTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hours   int
		minutes int
		rate    string
		want    string
	}{
		{name: "zero time", hours: 0, minutes: 0, rate: "100", want: "0"},
		{name: "whole hours", hours: 2, minutes: 0, rate: "50", want: "100"},
		{name: "minutes only", hours: 0, minutes: 30, rate: "100", want: "50"},
		{name: "mixed", hours: 1, minutes: 30, rate: "80", want: "120"},
		{name: "rounds to cents", hours: 0, minutes: 20, rate: "100", want: "33.33"},
		{name: "rounds half up", hours: 0, minutes: 50, rate: "100", want: "83.33"},
		{name: "negative hours clamp", hours: -3, minutes: 30, rate: "100", want: "50"},
		{name: "negative minutes clamp", hours: 1, minutes: -15, rate: "100", want: "100"},
		{name: "zero rate", hours: 5, minutes: 45, rate: "0", want: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := entity.LineItemTotal(tt.hours, tt.minutes, decimal.RequireFromString(tt.rate))
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	items := []entity.LineItem{
		{Total: decimal.RequireFromString("10.50")},
		{Total: decimal.RequireFromString("0.10")},
		{Total: decimal.RequireFromString("89.40")},
	}

	require.True(t, entity.Subtotal(items).Equal(decimal.RequireFromString("100")))

	// Order must not matter.
	reversed := []entity.LineItem{items[2], items[1], items[0]}
	require.True(t, entity.Subtotal(items).Equal(entity.Subtotal(reversed)))

	require.True(t, entity.Subtotal(nil).IsZero())
}

func TestGrandTotal(t *testing.T) {
	t.Parallel()

	subtotal := decimal.RequireFromString("200")
	adjustments := []entity.Adjustment{
		{Description: "Rush fee", Amount: decimal.RequireFromString("25")},
		{Description: "Discount", Amount: decimal.RequireFromString("-50")},
	}

	total := entity.GrandTotal(subtotal, entity.AdjustmentsTotal(adjustments))
	require.True(t, total.Equal(decimal.RequireFromString("175")))

	// A discount larger than the subtotal goes negative, that is allowed.
	deep := entity.GrandTotal(subtotal, decimal.RequireFromString("-300"))
	require.True(t, deep.Equal(decimal.RequireFromString("-100")))

	// No adjustments means total == subtotal.
	require.True(t, entity.GrandTotal(subtotal, entity.AdjustmentsTotal(nil)).Equal(subtotal))
}
