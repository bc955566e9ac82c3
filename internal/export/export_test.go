package export_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ratecraft/invoicing/internal/docmodel"
	"github.com/ratecraft/invoicing/internal/entity"
	"github.com/ratecraft/invoicing/internal/export"
)

func testDocument(t *testing.T) docmodel.Document {
	t.Helper()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	return docmodel.Build(entity.Invoice{
		Number:        "RC-IN-0042",
		ClientName:    "Acme Corp",
		SubmittedDate: end,
		PeriodStart:   &start,
		PeriodEnd:     &end,
		LineItems: []entity.LineItem{
			{
				Description: "Development",
				Hours:       10,
				Minutes:     30,
				Rate:        decimal.RequireFromString("80"),
				Total:       decimal.RequireFromString("840"),
				Link:        "https://github.com/acme/repo/pull/7",
				LinkLabel:   "PR #7",
				Note:        "backend work",
			},
		},
		Adjustments: []entity.Adjustment{
			{Description: "Discount", Amount: decimal.RequireFromString("-40")},
		},
		PaymentMethods: []entity.PaymentMethod{
			{Type: entity.PaymentMethodWise, Label: "Wise", Value: "https://wise.com/pay/me", IsLink: true},
			{Type: entity.PaymentMethodWireTransfer, Label: "Bank transfer", Value: "DE89", BankName: "Deutsche Bank"},
		},
		Subtotal: decimal.RequireFromString("840"),
		Total:    decimal.RequireFromString("800"),
		Status:   entity.InvoiceStatusPending,
		Style:    entity.InvoiceStyleClassic,
		Notes:    "Net 30",
	})
}

func TestHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := export.HTML(&buf, testDocument(t))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "#RC-IN-0042")
	require.Contains(t, out, "Acme Corp")
	require.Contains(t, out, "PENDING")
	require.Contains(t, out, "10h 30m")
	require.Contains(t, out, "$840.00")
	require.Contains(t, out, "Total: $800.00")
	require.Contains(t, out, `href="https://github.com/acme/repo/pull/7"`)
	require.Contains(t, out, "Bank: Deutsche Bank")
	require.Contains(t, out, "Net 30")
}

func TestHTML_EscapesUserContent(t *testing.T) {
	t.Parallel()

	doc := docmodel.Build(entity.Invoice{
		ClientName: `<script>alert("x")</script>`,
		LineItems:  []entity.LineItem{{Description: "Work"}},
	})

	var buf bytes.Buffer

	err := export.HTML(&buf, doc)
	require.NoError(t, err)
	require.NotContains(t, buf.String(), "<script>alert")
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := export.Print(&buf, testDocument(t))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "@media print")
	require.Contains(t, out, "#RC-IN-0042")
	require.Contains(t, out, "Payment Methods")

	// Self-contained: no external stylesheet or script references.
	require.NotContains(t, out, "<link")
	require.NotContains(t, out, "<script")
}

func TestRasterizerPNG(t *testing.T) {
	t.Parallel()

	r, err := export.NewRasterizer()
	require.NoError(t, err)

	var buf bytes.Buffer

	err = r.PNG(&buf, testDocument(t))
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 1240, img.Bounds().Dx())
	require.Equal(t, 1754, img.Bounds().Dy())
}

func TestPDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := export.PDF(&buf, testDocument(t))
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, strings.HasPrefix(string(out), "%PDF"), "missing PDF magic")

	// Payment blocks force a second page.
	require.Contains(t, string(out), "/Count 2")
}

func TestPDF_SinglePageWithoutPaymentMethods(t *testing.T) {
	t.Parallel()

	doc := docmodel.Build(entity.Invoice{
		ClientName: "Acme Corp",
		LineItems:  []entity.LineItem{{Description: "Work", Total: decimal.RequireFromString("10")}},
		Subtotal:   decimal.RequireFromString("10"),
		Total:      decimal.RequireFromString("10"),
	})

	var buf bytes.Buffer

	err := export.PDF(&buf, doc)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "/Count 1")
}
