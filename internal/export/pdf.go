package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ratecraft/invoicing/internal/docmodel"
)

// PDF writes a structured PDF built straight from the document tree. Unlike
// the print route it needs no browser: text stays selectable and links stay
// clickable.
func PDF(w io.Writer, doc docmodel.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 17, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeHeader(pdf, tr, doc)
	writeLineItems(pdf, tr, doc)
	writeTotals(pdf, tr, doc)

	if doc.Notes != "" {
		writeNotes(pdf, tr, doc.Notes)
	}

	if len(doc.PaymentBlocks) > 0 {
		// Payment details always start a fresh page.
		pdf.AddPage()
		writePaymentBlocks(pdf, tr, doc.PaymentBlocks)
	}

	err := pdf.Output(w)
	if err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	return nil
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string, doc docmodel.Document) {
	setFillHex(pdf, doc.Header.Badge.Fill)
	setTextHex(pdf, doc.Header.Badge.Ink)
	pdf.SetFont("Helvetica", "B", 9)

	badgeW := pdf.GetStringWidth(doc.Header.Badge.Text) + 8
	pdf.RoundedRect(15, 17, badgeW, 7, 1.5, "1234", "F")
	pdf.SetXY(15, 17)
	pdf.CellFormat(badgeW, 7, tr(doc.Header.Badge.Text), "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	setTextHex(pdf, "#6b7280")
	pdf.SetXY(110, 17)
	pdf.CellFormat(85, 5, tr(doc.Header.Submitted), "", 0, "R", false, 0, "")

	rightY := 22.0

	if doc.Header.Period != "" {
		pdf.SetXY(110, rightY)
		pdf.CellFormat(85, 5, tr(doc.Header.Period), "", 0, "R", false, 0, "")
		rightY += 5
	}

	pdf.SetFont("Helvetica", "B", 18)
	setTextHex(pdf, "#0f172a")
	pdf.SetXY(110, rightY+2)
	pdf.CellFormat(85, 9, tr(doc.Header.Total), "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	setTextHex(pdf, "#16a34a")
	pdf.SetXY(15, 27)
	pdf.CellFormat(90, 10, tr(doc.Header.Title), "", 2, "L", false, 0, "")

	if doc.Header.Number != "" {
		pdf.SetFont("Helvetica", "B", 12)
		setTextHex(pdf, "#0f172a")
		pdf.CellFormat(90, 6, tr(doc.Header.Number), "", 2, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	setTextHex(pdf, "#6b7280")
	pdf.CellFormat(90, 4, "Bill To", "", 2, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	setTextHex(pdf, "#0f172a")
	pdf.CellFormat(90, 6, tr(doc.Header.ClientName), "", 2, "L", false, 0, "")
	pdf.Ln(6)
}

func writeLineItems(pdf *fpdf.Fpdf, tr func(string) string, doc docmodel.Document) {
	const (
		descW  = 95.0
		timeW  = 22.0
		rateW  = 23.0
		totalW = 40.0
	)

	pdf.SetFont("Helvetica", "B", 11)
	setTextHex(pdf, "#0f172a")
	pdf.CellFormat(0, 6, "Line Items", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	setFillHex(pdf, "#f9fafb")
	setTextHex(pdf, "#4b5563")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(descW, 8, "Description", "", 0, "L", true, 0, "")
	pdf.CellFormat(timeW, 8, "Time", "", 0, "C", true, 0, "")
	pdf.CellFormat(rateW, 8, "Rate", "", 0, "C", true, 0, "")
	pdf.CellFormat(totalW, 8, "Total", "", 1, "R", true, 0, "")

	rowH := 12.0
	if doc.Compact {
		rowH = 8
	}

	setDrawHex(pdf, "#e5e7eb")
	pdf.SetLineWidth(0.2)

	for _, item := range doc.LineItems {
		height := rowH
		if item.Note != "" || item.Link != "" {
			height += 4
		}

		y := pdf.GetY()

		if !doc.Compact {
			setFillHex(pdf, "#f8fafc")
			pdf.Rect(15, y, descW+timeW+rateW+totalW, height, "F")
		}

		pdf.SetFont("Helvetica", "B", 10)
		setTextHex(pdf, "#0f172a")
		pdf.SetXY(17, y+1)
		pdf.CellFormat(descW-4, 5, tr(item.Description), "", 0, "L", false, 0, "")

		if item.Note != "" {
			pdf.SetFont("Helvetica", "I", 8)
			setTextHex(pdf, "#6b7280")
			pdf.SetXY(17, y+6)
			pdf.CellFormat(descW-4, 4, tr(item.Note), "", 0, "L", false, 0, "")
		} else if item.Link != "" {
			pdf.SetFont("Helvetica", "U", 8)
			setTextHex(pdf, "#2563eb")
			pdf.SetXY(17, y+6)
			pdf.CellFormat(descW-4, 4, tr(item.LinkLabel), "", 0, "L", false, 0, item.Link)
		}

		pdf.SetFont("Helvetica", "", 10)
		setTextHex(pdf, "#0f172a")
		pdf.SetXY(15+descW, y)
		pdf.CellFormat(timeW, height, tr(item.Time), "", 0, "C", false, 0, "")
		pdf.CellFormat(rateW, height, tr(item.Rate), "", 0, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(totalW, height, tr(item.Total), "", 1, "R", false, 0, "")

		y += height
		pdf.Line(15, y, 195, y)
		pdf.SetY(y)
	}

	pdf.Ln(6)
}

func writeTotals(pdf *fpdf.Fpdf, tr func(string) string, doc docmodel.Document) {
	const (
		boxX   = 125.0
		labelW = 40.0
		amtW   = 30.0
	)

	setDrawHex(pdf, "#e5e7eb")
	pdf.SetLineWidth(0.2)

	row := func(label, amount string, final bool) {
		y := pdf.GetY()

		if final {
			setDrawHex(pdf, "#d1d5db")
			pdf.SetLineWidth(0.5)
			pdf.Line(boxX, y, boxX+labelW+amtW, y)
		}

		pdf.SetXY(boxX, y+1)
		pdf.SetFont("Helvetica", "", 9)
		setTextHex(pdf, "#6b7280")
		pdf.CellFormat(labelW, 6, tr(label), "", 0, "L", false, 0, "")

		if final {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "B", 10)
		}

		setTextHex(pdf, "#0f172a")
		pdf.CellFormat(amtW, 6, tr(amount), "", 1, "R", false, 0, "")

		if !final {
			y = pdf.GetY() + 1
			pdf.Line(boxX, y, boxX+labelW+amtW, y)
			pdf.SetY(y)
		}
	}

	row("Subtotal", doc.Totals.Subtotal, false)

	for _, adj := range doc.Totals.Adjustments {
		row(adj.Label, adj.Amount, false)
	}

	row("Total", doc.Totals.Total, true)
	pdf.Ln(8)
}

func writeNotes(pdf *fpdf.Fpdf, tr func(string) string, notes string) {
	pdf.SetFont("Helvetica", "", 9)
	setTextHex(pdf, "#6b7280")
	pdf.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	setTextHex(pdf, "#0f172a")
	pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	pdf.Ln(4)
}

func writePaymentBlocks(pdf *fpdf.Fpdf, tr func(string) string, blocks []docmodel.PaymentBlock) {
	pdf.SetFont("Helvetica", "B", 12)
	setTextHex(pdf, "#0f172a")
	pdf.CellFormat(0, 7, "Payment Methods", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, block := range blocks {
		qrName := ""
		if img, kind, ok := qrImageReader(block.QRImage); ok {
			qrName = fmt.Sprintf("qr-%d", i)
			pdf.RegisterImageOptionsReader(qrName, fpdf.ImageOptions{ImageType: kind}, img)
		}

		height := 18.0 + float64(len(block.BankLines))*5
		if qrName != "" {
			height += 30
		}

		y := pdf.GetY()

		setFillHex(pdf, "#f9fafb")
		pdf.RoundedRect(15, y, 180, height, 2, "1234", "F")

		pdf.SetXY(19, y+3)
		pdf.SetFont("Helvetica", "", 9)
		setTextHex(pdf, "#6b7280")
		pdf.CellFormat(170, 5, tr(block.Label), "", 2, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)

		if block.IsLink {
			setTextHex(pdf, "#2563eb")
			pdf.CellFormat(170, 6, tr(block.Value), "", 2, "L", false, 0, block.Value)
		} else {
			setTextHex(pdf, "#0f172a")
			pdf.CellFormat(170, 6, tr(block.Value), "", 2, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "", 9)
		setTextHex(pdf, "#0f172a")

		for _, line := range block.BankLines {
			pdf.CellFormat(170, 5, tr(line), "", 2, "L", false, 0, "")
		}

		if qrName != "" {
			qrY := pdf.GetY() + 2
			pdf.ImageOptions(qrName, 19, qrY, 25, 25, false, fpdf.ImageOptions{}, 0, "")

			pdf.SetXY(48, qrY+10)
			setTextHex(pdf, "#6b7280")
			pdf.CellFormat(60, 5, "Scan to pay", "", 0, "L", false, 0, "")
		}

		pdf.SetY(y + height + 4)
	}
}

// qrImageReader decodes a data-URL QR image for embedding. Remote QR URLs
// are deliberately not fetched; those invoices carry the link on the HTML
// surfaces instead.
func qrImageReader(src string) (io.Reader, string, bool) {
	rest, ok := strings.CutPrefix(src, "data:image/")
	if !ok {
		return nil, "", false
	}

	kind, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, "", false
	}

	switch strings.ToLower(kind) {
	case "png", "jpeg", "jpg", "gif":
	default:
		return nil, "", false
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}

	return bytes.NewReader(raw), strings.ToUpper(kind), true
}

func setTextHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetTextColor(r, g, b)
}

func setFillHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetFillColor(r, g, b)
}

func setDrawHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetDrawColor(r, g, b)
}

func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}

	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}
