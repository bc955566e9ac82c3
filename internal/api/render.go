package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/ratecraft/invoicing/internal/docmodel"
	"github.com/ratecraft/invoicing/internal/export"
)

// PreviewInvoice renders the on-screen HTML preview
// @Summary Preview invoice
// @Tags export
// @Produce html
// @Param id path string true "Invoice ID"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /invoices/{id}/preview [get]
// @Security BearerAuth
func (h *Handler) PreviewInvoice(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, r, export.HTML)
}

// PrintInvoice renders a self-contained print document
// @Summary Print invoice
// @Description Returns a standalone HTML document styled for the browser's print-to-PDF dialog
// @Tags export
// @Produce html
// @Param id path string true "Invoice ID"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /invoices/{id}/print [get]
// @Security BearerAuth
func (h *Handler) PrintInvoice(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, r, export.Print)
}

func (h *Handler) renderHTML(w http.ResponseWriter, r *http.Request, render func(w io.Writer, doc docmodel.Document) error) {
	ctx := r.Context()

	doc, _, ok := h.buildDocument(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer

	err := render(&buf, doc)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err = buf.WriteTo(w)
	if err != nil {
		slog.ErrorContext(ctx, "write rendered invoice", "error", err)
	}
}

// ExportPNG rasterizes the invoice to a PNG image
// @Summary Export invoice as PNG
// @Description When rasterization is unavailable the handler degrades to the print document and sets X-Export-Fallback: print
// @Tags export
// @Produce png
// @Param id path string true "Invoice ID"
// @Success 200 {string} binary "PNG image"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /invoices/{id}/export/png [get]
// @Security BearerAuth
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, name, ok := h.buildDocument(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer

	if h.raster == nil {
		h.printFallback(w, r, doc, fmt.Errorf("rasterizer unavailable"))
		return
	}

	err := h.raster.PNG(&buf, doc)
	if err != nil {
		h.printFallback(w, r, doc, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".png"))
	w.WriteHeader(http.StatusOK)

	_, err = buf.WriteTo(w)
	if err != nil {
		slog.ErrorContext(ctx, "write png export", "error", err)
	}
}

// printFallback answers an export request with the print document. The
// header lets clients know they got a degraded format.
func (h *Handler) printFallback(w http.ResponseWriter, r *http.Request, doc docmodel.Document, cause error) {
	ctx := r.Context()

	slog.WarnContext(ctx, "png export degraded to print document", "error", cause)

	var buf bytes.Buffer

	err := export.Print(&buf, doc)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to render invoice")
		return
	}

	w.Header().Set("X-Export-Fallback", "print")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, err = buf.WriteTo(w)
	if err != nil {
		slog.ErrorContext(ctx, "write fallback document", "error", err)
	}
}

// ExportPDF builds a structured PDF
// @Summary Export invoice as PDF
// @Description Selectable text and clickable links; payment methods start on their own page
// @Tags export
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {string} binary "PDF document"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /invoices/{id}/export/pdf [get]
// @Security BearerAuth
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, name, ok := h.buildDocument(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer

	err := export.PDF(&buf, doc)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to build PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
	w.WriteHeader(http.StatusOK)

	_, err = buf.WriteTo(w)
	if err != nil {
		slog.ErrorContext(ctx, "write pdf export", "error", err)
	}
}

// buildDocument loads the invoice behind {id} and turns it into a document
// tree. On failure it writes the error response and reports !ok.
func (h *Handler) buildDocument(w http.ResponseWriter, r *http.Request) (docmodel.Document, string, bool) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return docmodel.Document{}, "", false
	}

	invoice, err := h.s.Invoice(ctx, id)
	if err != nil {
		h.sendGetErr(ctx, w, err)
		return docmodel.Document{}, "", false
	}

	name := invoice.Number
	if name == "" {
		name = "invoice"
	}

	return docmodel.Build(invoice), name, true
}
