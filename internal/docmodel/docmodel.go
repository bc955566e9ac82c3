// Package docmodel turns an invoice into a renderer-agnostic document tree.
// Every export surface (HTML preview, print document, PNG, PDF) consumes the
// same Document, so the renderings cannot drift apart.
package docmodel

import (
	"strings"

	"github.com/ratecraft/invoicing/internal/entity"
)

type Document struct {
	Compact       bool // Denser rows, no cell shading.
	Header        Header
	LineItems     []LineItemRow
	Totals        Totals
	Notes         string
	PaymentBlocks []PaymentBlock
}

type Badge struct {
	Text string
	Fill string
	Ink  string
}

type Header struct {
	Badge      Badge
	Title      string
	Number     string
	ClientName string
	Submitted  string
	Period     string // Empty unless both period ends are set.
	Total      string
}

type LineItemRow struct {
	Description string
	Note        string
	Link        string
	LinkLabel   string
	Time        string
	Rate        string
	Total       string
}

type TotalLine struct {
	Label  string
	Amount string
}

type Totals struct {
	Subtotal    string
	Adjustments []TotalLine
	Total       string
}

type IconKind string

const (
	IconWise    IconKind = "wise"
	IconGeneric IconKind = "generic"
)

type PaymentBlock struct {
	Icon      IconKind
	Label     string
	Value     string
	IsLink    bool
	BankLines []string
	QRImage   string // Data URL or plain URL, data wins upstream.
}

// Badge colors per status. Unknown statuses render as draft.
var badgeStyles = map[entity.InvoiceStatus]Badge{
	entity.InvoiceStatusDraft:     {Fill: "#f8fafc", Ink: "#475569"},
	entity.InvoiceStatusPending:   {Fill: "#fef9c3", Ink: "#92400e"},
	entity.InvoiceStatusPaid:      {Fill: "#ecfdf3", Ink: "#15803d"},
	entity.InvoiceStatusOverdue:   {Fill: "#fef2f2", Ink: "#b91c1c"},
	entity.InvoiceStatusCancelled: {Fill: "#f3f4f6", Ink: "#6b7280"},
}

func statusBadge(status entity.InvoiceStatus) Badge {
	badge, ok := badgeStyles[status]
	if !ok {
		status = entity.InvoiceStatusDraft
		badge = badgeStyles[status]
	}

	badge.Text = strings.ToUpper(status.String())

	return badge
}

// Build assembles the document for an invoice. It never fails: missing or
// odd data renders as placeholders, never as an error page.
func Build(inv entity.Invoice) Document {
	doc := Document{
		Compact: inv.Style == entity.InvoiceStyleCompact,
		Notes:   strings.TrimSpace(inv.Notes),
	}

	doc.Header = Header{
		Badge:      statusBadge(inv.Status),
		Title:      "Invoice",
		ClientName: inv.ClientName,
		Submitted:  "Submitted: " + FormatDate(inv.SubmittedDate),
		Total:      "Total: " + FormatMoney(inv.Total),
	}

	if doc.Header.ClientName == "" {
		doc.Header.ClientName = "Client"
	}

	if inv.Number != "" {
		doc.Header.Number = "#" + inv.Number
	}

	if inv.HasPeriod() {
		doc.Header.Period = "Period: " + FormatDate(*inv.PeriodStart) + " - " + FormatDate(*inv.PeriodEnd)
	}

	doc.LineItems = make([]LineItemRow, 0, len(inv.LineItems))

	for _, item := range inv.LineItems {
		row := LineItemRow{
			Description: item.Description,
			Note:        item.Note,
			Link:        item.Link,
			LinkLabel:   item.LinkLabel,
			Time:        FormatTime(item.Hours, item.Minutes),
			Rate:        FormatMoney(item.Rate),
			Total:       FormatMoney(item.Total),
		}

		if row.Description == "" {
			row.Description = "—"
		}

		if row.Link != "" && row.LinkLabel == "" {
			row.LinkLabel = row.Link
		}

		doc.LineItems = append(doc.LineItems, row)
	}

	doc.Totals = Totals{
		Subtotal: FormatMoney(inv.Subtotal),
		Total:    FormatMoney(inv.Total),
	}

	for _, adj := range inv.Adjustments {
		label := adj.Description
		if label == "" {
			label = "Adjustment"
		}

		doc.Totals.Adjustments = append(doc.Totals.Adjustments, TotalLine{
			Label:  label,
			Amount: FormatMoney(adj.Amount),
		})
	}

	doc.PaymentBlocks = make([]PaymentBlock, 0, len(inv.PaymentMethods))

	for _, m := range inv.PaymentMethods {
		doc.PaymentBlocks = append(doc.PaymentBlocks, buildPaymentBlock(m))
	}

	return doc
}

func buildPaymentBlock(m entity.PaymentMethod) PaymentBlock {
	block := PaymentBlock{
		Icon:    IconGeneric,
		Label:   m.Label,
		Value:   m.Value,
		IsLink:  m.IsLink,
		QRImage: m.QRImage(),
	}

	if m.Type == entity.PaymentMethodWise {
		block.Icon = IconWise
	}

	if block.Label == "" {
		block.Label = "Payment Method"
	}

	if block.Value == "" {
		block.Value = "—"
		block.IsLink = false
	}

	if m.Type == entity.PaymentMethodWireTransfer {
		block.IsLink = false

		if m.BankName != "" {
			block.BankLines = append(block.BankLines, "Bank: "+m.BankName)
		}

		if m.AccountNumber != "" {
			block.BankLines = append(block.BankLines, "Account / IBAN: "+m.AccountNumber)
		}

		if m.SwiftCode != "" {
			block.BankLines = append(block.BankLines, "SWIFT: "+m.SwiftCode)
		}

		if m.RoutingNumber != "" {
			block.BankLines = append(block.BankLines, "Routing: "+m.RoutingNumber)
		}
	}

	return block
}
