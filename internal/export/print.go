package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ratecraft/invoicing/internal/docmodel"
)

// Print writes a self-contained document styled for the browser's print
// dialog. It carries its own stylesheet and depends on nothing external,
// so it also serves as the fallback when rasterization fails.
func Print(w io.Writer, doc docmodel.Document) error {
	err := printTmpl.Execute(w, doc)
	if err != nil {
		return fmt.Errorf("render print document: %w", err)
	}

	return nil
}

var printTmpl = template.Must(template.New("print").Funcs(tmplFuncs).Parse(printHTML))

const printHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Header.Number}} {{.Header.ClientName}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #111827; margin: 0; padding: 40px; min-height: 297mm; background: white; }
  h1 { font-size: 48px; margin: 0 0 16px; color: #22c55e; }
  .badge { display: inline-block; padding: 6px 16px; border-radius: 6px; font-weight: 600; font-size: 12px; }
  .label { font-size: 12px; color: #6b7280; }
  .bold { font-weight: 700; }
  .semibold { font-weight: 600; }
  .head { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .head .right { text-align: right; }
  .grand { font-size: 28px; font-weight: 700; margin-top: 12px; }
  table { width: 100%; border-collapse: collapse; margin: 20px 0; }
  th, td { padding: {{if .Compact}}8px 10px{{else}}16px 12px{{end}}; text-align: left; border-bottom: 1px solid #e5e7eb; }
  th { font-weight: 600; color: #4b5563; background: #f9fafb; }
  td.num, th.num { text-align: right; }
  a { color: #2563eb; text-decoration: none; }
  .note { font-size: 12px; color: #6b7280; font-style: italic; }
  .totals { margin-left: auto; width: 280px; }
  .totals .row { display: flex; justify-content: space-between; padding: 8px 6px; border-bottom: 1px solid #e5e7eb; }
  .totals .final { border-top: 2px solid #d1d5db; font-size: 18px; font-weight: 700; }
  .notes { margin-top: 24px; }
  .pay-block { background: #f3f4f6; padding: 10px 14px; border-radius: 6px; margin: 12px 0; }
  .pay-block .bank { font-size: 13px; margin-top: 4px; }
  img { max-width: 80px; max-height: 80px; object-fit: contain; }
  @media print {
    body { print-color-adjust: exact; -webkit-print-color-adjust: exact; }
    @page { margin: 15mm; }
  }
</style>
</head>
<body>
  <div class="head">
    <div>
      <span class="badge" style="background: {{.Header.Badge.Fill}}; color: {{.Header.Badge.Ink}};">{{.Header.Badge.Text}}</span>
      <h1>{{.Header.Title}}</h1>
      {{if .Header.Number}}<div class="bold">{{.Header.Number}}</div>{{end}}
      <div class="label" style="margin-top: 16px;">Bill To</div>
      <div class="bold">{{.Header.ClientName}}</div>
    </div>
    <div class="right">
      <div class="label">{{.Header.Submitted}}</div>
      {{if .Header.Period}}<div class="label">{{.Header.Period}}</div>{{end}}
      <div class="grand">{{.Header.Total}}</div>
    </div>
  </div>
  <table>
    <tr><th>Description</th><th>Time</th><th>Rate</th><th class="num">Total</th></tr>
    {{range .LineItems}}
    <tr>
      <td>
        <span class="bold">{{.Description}}</span>
        {{if .Note}}<div class="note">{{.Note}}</div>{{end}}
        {{if .Link}}<div><a href="{{.Link}}">{{.LinkLabel}}</a></div>{{end}}
      </td>
      <td>{{.Time}}</td>
      <td>{{.Rate}}</td>
      <td class="num bold">{{.Total}}</td>
    </tr>
    {{end}}
  </table>
  <div class="totals">
    <div class="row"><span class="label">Subtotal</span><span class="semibold">{{.Totals.Subtotal}}</span></div>
    {{range .Totals.Adjustments}}
    <div class="row"><span class="label">{{.Label}}</span><span class="semibold">{{.Amount}}</span></div>
    {{end}}
    <div class="row final"><span>Total</span><span>{{.Totals.Total}}</span></div>
  </div>
  {{if .Notes}}
  <div class="notes">
    <div class="label">Notes</div>
    <div>{{.Notes}}</div>
  </div>
  {{end}}
  {{if .PaymentBlocks}}
  <div class="notes">
    <div class="semibold">Payment Methods</div>
    {{range .PaymentBlocks}}
    <div class="pay-block">
      <div class="label">{{.Label}}</div>
      {{if .IsLink}}<a href="{{.Value}}">{{.Value}}</a>{{else}}<span class="bold">{{.Value}}</span>{{end}}
      {{range .BankLines}}<div class="bank">{{.}}</div>{{end}}
      {{if .QRImage}}<div><img src="{{qrURL .QRImage}}" alt="QR code"> <span class="label">Scan to pay</span></div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</body>
</html>
`
