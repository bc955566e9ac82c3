// Package export renders a document tree onto the delivery surfaces:
// preview HTML, print HTML, PNG and PDF.
package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ratecraft/invoicing/internal/docmodel"
)

// HTML writes the on-screen preview rendering of the document.
func HTML(w io.Writer, doc docmodel.Document) error {
	err := previewTmpl.Execute(w, doc)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}

	return nil
}

// qrURL lets uploaded data: image URLs through, which html/template's URL
// sanitizer would otherwise reject. The methods were sanitized on save.
var tmplFuncs = template.FuncMap{
	"qrURL": func(s string) template.URL { return template.URL(s) },
}

var previewTmpl = template.Must(template.New("preview").Funcs(tmplFuncs).Parse(previewHTML))

const previewHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Header.Number}} {{.Header.ClientName}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; color: #0f172a; margin: 0; background: #f1f5f9; }
  .sheet { max-width: 820px; margin: 24px auto; background: #fff; border-radius: 12px; box-shadow: 0 1px 4px rgba(15, 23, 42, .08); padding: {{if .Compact}}28px{{else}}48px{{end}}; }
  .badge { display: inline-block; font-size: 11px; font-weight: 700; letter-spacing: .05em; padding: 4px 10px; border-radius: 6px; }
  h1 { font-size: 34px; color: #16a34a; margin: 8px 0 2px; }
  .number { font-size: 14px; font-weight: 700; }
  .label { font-size: 11px; color: #6b7280; }
  .head { display: flex; justify-content: space-between; gap: 16px; margin-bottom: 18px; }
  .head .right { text-align: right; }
  .grand { font-size: 22px; font-weight: 700; margin-top: 8px; }
  table.items { width: 100%; border-collapse: collapse; margin: 12px 0; }
  table.items th { font-size: 11px; color: #4b5563; text-align: left; padding: {{if .Compact}}6px 8px{{else}}10px 12px{{end}}; background: #f9fafb; border-bottom: 1px solid #e5e7eb; }
  table.items td { font-size: 13px; padding: {{if .Compact}}6px 8px{{else}}12px{{end}}; border-bottom: 1px solid #e5e7eb; {{if not .Compact}}background: #f8fafc;{{end}} }
  td.num, th.num { text-align: right; }
  .note { font-size: 11px; color: #6b7280; font-style: italic; }
  a { color: #2563eb; text-decoration: none; }
  .totals { margin-left: auto; width: 260px; font-size: 13px; }
  .totals .row { display: flex; justify-content: space-between; padding: 5px 6px; border-bottom: 1px solid #e5e7eb; }
  .totals .final { font-size: 16px; font-weight: 700; border-top: 2px solid #d1d5db; }
  .notes { margin-top: 20px; font-size: 13px; }
  .pay { margin-top: 24px; }
  .pay .block { background: #f9fafb; border-radius: 8px; padding: 12px 14px; margin: 8px 0; }
  .pay .bank { font-size: 12px; margin-top: 2px; }
  .pay img { max-width: 80px; max-height: 80px; object-fit: contain; margin-top: 8px; }
</style>
</head>
<body>
<div class="sheet">
  <div class="head">
    <div>
      <span class="badge" style="background: {{.Header.Badge.Fill}}; color: {{.Header.Badge.Ink}};">{{.Header.Badge.Text}}</span>
      <h1>{{.Header.Title}}</h1>
      {{if .Header.Number}}<div class="number">{{.Header.Number}}</div>{{end}}
      <div class="label" style="margin-top: 14px;">Bill To</div>
      <div class="number">{{.Header.ClientName}}</div>
    </div>
    <div class="right">
      <div class="label">{{.Header.Submitted}}</div>
      {{if .Header.Period}}<div class="label">{{.Header.Period}}</div>{{end}}
      <div class="grand">{{.Header.Total}}</div>
    </div>
  </div>
  <table class="items">
    <tr><th>Description</th><th>Time</th><th>Rate</th><th class="num">Total</th></tr>
    {{range .LineItems}}
    <tr>
      <td>
        <strong>{{.Description}}</strong>
        {{if .Note}}<div class="note">{{.Note}}</div>{{end}}
        {{if .Link}}<div><a href="{{.Link}}">{{.LinkLabel}}</a></div>{{end}}
      </td>
      <td>{{.Time}}</td>
      <td>{{.Rate}}</td>
      <td class="num"><strong>{{.Total}}</strong></td>
    </tr>
    {{end}}
  </table>
  <div class="totals">
    <div class="row"><span class="label">Subtotal</span><strong>{{.Totals.Subtotal}}</strong></div>
    {{range .Totals.Adjustments}}
    <div class="row"><span class="label">{{.Label}}</span><strong>{{.Amount}}</strong></div>
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
  <div class="pay">
    <div class="number">Payment Methods</div>
    {{range .PaymentBlocks}}
    <div class="block">
      <div class="label">{{.Label}}</div>
      {{if .IsLink}}<a href="{{.Value}}">{{.Value}}</a>{{else}}<strong>{{.Value}}</strong>{{end}}
      {{range .BankLines}}<div class="bank">{{.}}</div>{{end}}
      {{if .QRImage}}<div><img src="{{qrURL .QRImage}}" alt="QR code"> <span class="label">Scan to pay</span></div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`
