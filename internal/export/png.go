package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ratecraft/invoicing/internal/docmodel"
)

// A4 at 150 dpi.
const (
	pageWidth  = 1240
	pageHeight = 1754
	pageMargin = 90.0
)

// Rasterizer draws documents onto an A4-proportioned canvas. Font loading
// happens once at construction; a constructor error tells the caller to fall
// back to the print document.
type Rasterizer struct {
	title  font.Face
	big    font.Face
	bold   font.Face
	body   font.Face
	label  font.Face
	badge  font.Face
	strike font.Face
}

func NewRasterizer() (*Rasterizer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}

	face := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}

	r := &Rasterizer{}

	fetch := []struct {
		dst  *font.Face
		src  *opentype.Font
		size float64
	}{
		{&r.title, boldFont, 56},
		{&r.big, boldFont, 34},
		{&r.bold, boldFont, 18},
		{&r.body, regular, 18},
		{&r.label, regular, 15},
		{&r.badge, boldFont, 14},
		{&r.strike, boldFont, 24},
	}

	for _, f := range fetch {
		*f.dst, err = face(f.src, f.size)
		if err != nil {
			return nil, fmt.Errorf("build %gpt face: %w", f.size, err)
		}
	}

	return r, nil
}

// PNG rasterizes the document and writes it as a PNG image. Content past
// the bottom of the page is clipped, matching a single-page screenshot.
func (r *Rasterizer) PNG(w io.Writer, doc docmodel.Document) error {
	dc := gg.NewContext(pageWidth, pageHeight)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	y := pageMargin

	y = r.drawHeader(dc, doc, y)
	y = r.drawLineItems(dc, doc, y+30)
	y = r.drawTotals(dc, doc, y+20)

	if doc.Notes != "" {
		y = r.drawNotes(dc, doc.Notes, y+30)
	}

	if len(doc.PaymentBlocks) > 0 {
		r.drawPaymentBlocks(dc, doc.PaymentBlocks, y+30)
	}

	err := dc.EncodePNG(w)
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}

func (r *Rasterizer) drawHeader(dc *gg.Context, doc docmodel.Document, y float64) float64 {
	right := pageWidth - pageMargin

	dc.SetFontFace(r.badge)
	bw, bh := dc.MeasureString(doc.Header.Badge.Text)
	dc.SetHexColor(doc.Header.Badge.Fill)
	dc.DrawRoundedRectangle(pageMargin, y, bw+28, bh+16, 8)
	dc.Fill()
	dc.SetHexColor(doc.Header.Badge.Ink)
	dc.DrawString(doc.Header.Badge.Text, pageMargin+14, y+bh+6)

	dc.SetFontFace(r.label)
	dc.SetHexColor("#6b7280")
	dc.DrawStringAnchored(doc.Header.Submitted, right, y+12, 1, 0.5)

	ry := y + 12

	if doc.Header.Period != "" {
		ry += 26
		dc.DrawStringAnchored(doc.Header.Period, right, ry, 1, 0.5)
	}

	dc.SetFontFace(r.big)
	dc.SetHexColor("#0f172a")
	dc.DrawStringAnchored(doc.Header.Total, right, ry+46, 1, 0.5)

	y += bh + 40

	dc.SetFontFace(r.title)
	dc.SetHexColor("#16a34a")
	dc.DrawString(doc.Header.Title, pageMargin, y+44)
	y += 64

	if doc.Header.Number != "" {
		dc.SetFontFace(r.bold)
		dc.SetHexColor("#0f172a")
		dc.DrawString(doc.Header.Number, pageMargin, y+18)
		y += 28
	}

	dc.SetFontFace(r.label)
	dc.SetHexColor("#6b7280")
	dc.DrawString("BILL TO", pageMargin, y+30)

	dc.SetFontFace(r.bold)
	dc.SetHexColor("#0f172a")
	dc.DrawString(doc.Header.ClientName, pageMargin, y+58)

	return y + 70
}

func (r *Rasterizer) drawLineItems(dc *gg.Context, doc docmodel.Document, y float64) float64 {
	const (
		timeCol  = pageMargin + 640
		rateCol  = pageMargin + 800
		headerH  = 44.0
		padX     = 14.0
		rowH     = 72.0
		rowHTiny = 52.0
	)

	right := pageWidth - pageMargin
	width := right - pageMargin

	dc.SetHexColor("#f9fafb")
	dc.DrawRectangle(pageMargin, y, width, headerH)
	dc.Fill()

	dc.SetFontFace(r.label)
	dc.SetHexColor("#4b5563")
	dc.DrawString("Description", pageMargin+padX, y+28)
	dc.DrawString("Time", timeCol, y+28)
	dc.DrawString("Rate", rateCol, y+28)
	dc.DrawStringAnchored("Total", right-padX, y+22, 1, 0.5)

	y += headerH

	height := rowH
	if doc.Compact {
		height = rowHTiny
	}

	for _, item := range doc.LineItems {
		if !doc.Compact {
			dc.SetHexColor("#f8fafc")
			dc.DrawRectangle(pageMargin, y, width, height)
			dc.Fill()
		}

		base := y + height/2

		dc.SetFontFace(r.bold)
		dc.SetHexColor("#0f172a")

		if item.Note == "" {
			dc.DrawStringAnchored(item.Description, pageMargin+padX, base, 0, 0.35)
		} else {
			dc.DrawStringAnchored(item.Description, pageMargin+padX, base-12, 0, 0.35)
			dc.SetFontFace(r.label)
			dc.SetHexColor("#6b7280")
			dc.DrawStringAnchored(item.Note, pageMargin+padX, base+14, 0, 0.35)
		}

		dc.SetFontFace(r.body)
		dc.SetHexColor("#0f172a")
		dc.DrawStringAnchored(item.Time, timeCol, base, 0, 0.35)
		dc.DrawStringAnchored(item.Rate, rateCol, base, 0, 0.35)

		dc.SetFontFace(r.bold)
		dc.DrawStringAnchored(item.Total, right-padX, base, 1, 0.35)

		y += height

		dc.SetHexColor("#e5e7eb")
		dc.SetLineWidth(1)
		dc.DrawLine(pageMargin, y, right, y)
		dc.Stroke()
	}

	return y
}

func (r *Rasterizer) drawTotals(dc *gg.Context, doc docmodel.Document, y float64) float64 {
	const boxWidth = 340.0

	right := pageWidth - pageMargin
	left := right - boxWidth

	row := func(label, amount string, final bool) {
		if final {
			dc.SetHexColor("#d1d5db")
			dc.SetLineWidth(2)
			dc.DrawLine(left, y, right, y)
			dc.Stroke()
		}

		dc.SetFontFace(r.label)
		dc.SetHexColor("#6b7280")
		dc.DrawStringAnchored(label, left+8, y+22, 0, 0.5)

		if final {
			dc.SetFontFace(r.strike)
		} else {
			dc.SetFontFace(r.bold)
		}

		dc.SetHexColor("#0f172a")
		dc.DrawStringAnchored(amount, right-8, y+22, 1, 0.5)

		y += 44

		if !final {
			dc.SetHexColor("#e5e7eb")
			dc.SetLineWidth(1)
			dc.DrawLine(left, y-6, right, y-6)
			dc.Stroke()
		}
	}

	row("Subtotal", doc.Totals.Subtotal, false)

	for _, adj := range doc.Totals.Adjustments {
		row(adj.Label, adj.Amount, false)
	}

	row("Total", doc.Totals.Total, true)

	return y
}

func (r *Rasterizer) drawNotes(dc *gg.Context, notes string, y float64) float64 {
	dc.SetFontFace(r.label)
	dc.SetHexColor("#6b7280")
	dc.DrawString("Notes", pageMargin, y+16)

	dc.SetFontFace(r.body)
	dc.SetHexColor("#0f172a")

	width := float64(pageWidth) - 2*pageMargin
	lines := dc.WordWrap(notes, width)

	ly := y + 46
	for _, line := range lines {
		dc.DrawString(line, pageMargin, ly)
		ly += 26
	}

	return ly
}

func (r *Rasterizer) drawPaymentBlocks(dc *gg.Context, blocks []docmodel.PaymentBlock, y float64) {
	right := pageWidth - pageMargin
	width := right - pageMargin

	dc.SetFontFace(r.bold)
	dc.SetHexColor("#0f172a")
	dc.DrawString("Payment Methods", pageMargin, y+18)
	y += 40

	for _, block := range blocks {
		height := 64.0 + float64(len(block.BankLines))*26

		qr := decodeQRImage(block.QRImage)
		if qr != nil {
			height += 130
		}

		dc.SetHexColor("#f9fafb")
		dc.DrawRoundedRectangle(pageMargin, y, width, height, 10)
		dc.Fill()

		dc.SetFontFace(r.label)
		dc.SetHexColor("#6b7280")
		dc.DrawString(block.Label, pageMargin+16, y+26)

		dc.SetFontFace(r.bold)
		if block.IsLink {
			dc.SetHexColor("#2563eb")
		} else {
			dc.SetHexColor("#0f172a")
		}
		dc.DrawString(block.Value, pageMargin+16, y+52)

		ly := y + 78

		dc.SetFontFace(r.body)
		dc.SetHexColor("#0f172a")

		for _, line := range block.BankLines {
			dc.DrawString(line, pageMargin+16, ly)
			ly += 26
		}

		if qr != nil {
			drawScaled(dc, qr, pageMargin+16, ly-10, 110)

			dc.SetFontFace(r.label)
			dc.SetHexColor("#6b7280")
			dc.DrawString("Scan to pay", pageMargin+140, ly+50)
		}

		y += height + 16
	}
}

// decodeQRImage decodes an uploaded data-URL image. Plain URLs are not
// fetched server-side; they render only on the HTML surfaces.
func decodeQRImage(src string) image.Image {
	rest, ok := strings.CutPrefix(src, "data:image/")
	if !ok {
		return nil
	}

	_, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	return img
}

func drawScaled(dc *gg.Context, img image.Image, x, y, size float64) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	scale := size / float64(bounds.Dx())

	dc.Push()
	dc.Scale(scale, scale)
	dc.DrawImage(img, int(x/scale), int(y/scale))
	dc.Pop()
}
