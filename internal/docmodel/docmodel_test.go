package docmodel_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ratecraft/invoicing/internal/docmodel"
	"github.com/ratecraft/invoicing/internal/entity"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours   int
		minutes int
		want    string
	}{
		{hours: 0, minutes: 0, want: "0h"},
		{hours: 2, minutes: 0, want: "2h"},
		{hours: 0, minutes: 45, want: "45m"},
		{hours: 1, minutes: 30, want: "1h 30m"},
		{hours: -1, minutes: -5, want: "0h"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, docmodel.FormatTime(tt.hours, tt.minutes))
	}
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$100.00", docmodel.FormatMoney(decimal.RequireFromString("100")))
	require.Equal(t, "$33.33", docmodel.FormatMoney(decimal.RequireFromString("33.333")))
	require.Equal(t, "$-40.00", docmodel.FormatMoney(decimal.RequireFromString("-40")))
	require.Equal(t, "$0.00", docmodel.FormatMoney(decimal.Zero))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	inv := entity.Invoice{
		Number:        "RC-IN-0042",
		ClientName:    "Acme Corp",
		SubmittedDate: time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC),
		PeriodStart:   &start,
		PeriodEnd:     &end,
		LineItems: []entity.LineItem{
			{Description: "Development", Hours: 10, Minutes: 30, Rate: decimal.RequireFromString("80"), Total: decimal.RequireFromString("840")},
			{Link: "https://github.com/acme/repo/pull/7", Total: decimal.RequireFromString("60")},
		},
		Adjustments: []entity.Adjustment{
			{Amount: decimal.RequireFromString("-40")},
		},
		PaymentMethods: []entity.PaymentMethod{
			{Type: entity.PaymentMethodWise, Label: "Wise", Value: "https://wise.com/pay/me", IsLink: true},
			{
				Type:          entity.PaymentMethodWireTransfer,
				Label:         "Bank transfer",
				Value:         "DE89370400440532013000",
				BankName:      "Deutsche Bank",
				AccountNumber: "DE89370400440532013000",
				SwiftCode:     "DEUTDEFF",
			},
		},
		Subtotal: decimal.RequireFromString("900"),
		Total:    decimal.RequireFromString("860"),
		Status:   entity.InvoiceStatusPending,
		Style:    entity.InvoiceStyleCompact,
		Notes:    "  Net 30  ",
	}

	doc := docmodel.Build(inv)

	require.True(t, doc.Compact)
	require.Equal(t, "PENDING", doc.Header.Badge.Text)
	require.Equal(t, "#fef9c3", doc.Header.Badge.Fill)
	require.Equal(t, "#RC-IN-0042", doc.Header.Number)
	require.Equal(t, "Acme Corp", doc.Header.ClientName)
	require.Equal(t, "Submitted: Aug 16, 2026", doc.Header.Submitted)
	require.Equal(t, "Period: Aug 01, 2026 - Aug 15, 2026", doc.Header.Period)
	require.Equal(t, "Total: $860.00", doc.Header.Total)

	require.Len(t, doc.LineItems, 2)
	require.Equal(t, "10h 30m", doc.LineItems[0].Time)
	require.Equal(t, "$80.00", doc.LineItems[0].Rate)
	require.Equal(t, "$840.00", doc.LineItems[0].Total)

	// Empty description renders a placeholder, a bare link names itself.
	require.Equal(t, "—", doc.LineItems[1].Description)
	require.Equal(t, doc.LineItems[1].Link, doc.LineItems[1].LinkLabel)

	require.Equal(t, "$900.00", doc.Totals.Subtotal)
	require.Len(t, doc.Totals.Adjustments, 1)
	require.Equal(t, "Adjustment", doc.Totals.Adjustments[0].Label)
	require.Equal(t, "$-40.00", doc.Totals.Adjustments[0].Amount)
	require.Equal(t, "$860.00", doc.Totals.Total)

	require.Equal(t, "Net 30", doc.Notes)

	require.Len(t, doc.PaymentBlocks, 2)
	require.Equal(t, docmodel.IconWise, doc.PaymentBlocks[0].Icon)
	require.True(t, doc.PaymentBlocks[0].IsLink)

	wire := doc.PaymentBlocks[1]
	require.Equal(t, docmodel.IconGeneric, wire.Icon)
	require.False(t, wire.IsLink)
	require.Equal(t, []string{
		"Bank: Deutsche Bank",
		"Account / IBAN: DE89370400440532013000",
		"SWIFT: DEUTDEFF",
	}, wire.BankLines)
}

func TestBuild_TotalsMatchComputation(t *testing.T) {
	t.Parallel()

	items := []entity.LineItem{
		{Description: "A", Total: decimal.RequireFromString("10.10")},
		{Description: "B", Total: decimal.RequireFromString("20.20")},
	}
	adjustments := []entity.Adjustment{
		{Description: "Fee", Amount: decimal.RequireFromString("5")},
	}

	subtotal := entity.Subtotal(items)
	total := entity.GrandTotal(subtotal, entity.AdjustmentsTotal(adjustments))

	doc := docmodel.Build(entity.Invoice{
		ClientName:  "Acme Corp",
		LineItems:   items,
		Adjustments: adjustments,
		Subtotal:    subtotal,
		Total:       total,
	})

	require.Equal(t, docmodel.FormatMoney(subtotal), doc.Totals.Subtotal)
	require.Equal(t, docmodel.FormatMoney(total), doc.Totals.Total)
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	doc := docmodel.Build(entity.Invoice{})

	// Unknown status falls back to the draft badge, missing client to a
	// placeholder. The builder never fails.
	require.Equal(t, "DRAFT", doc.Header.Badge.Text)
	require.Equal(t, "Client", doc.Header.ClientName)
	require.Empty(t, doc.Header.Number)
	require.Empty(t, doc.Header.Period)
	require.Empty(t, doc.PaymentBlocks)

	end := time.Now()
	doc = docmodel.Build(entity.Invoice{Status: "bogus", PeriodEnd: &end})
	require.Equal(t, "DRAFT", doc.Header.Badge.Text)
	require.Empty(t, doc.Header.Period, "one-ended period is not displayed")
}
