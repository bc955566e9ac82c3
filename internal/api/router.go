package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ratecraft/invoicing/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Route("/invoices", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/", h.Invoices)
			r.Post("/", h.CreateInvoice)
			r.Get("/{id}", h.Invoice)
			r.Put("/{id}", h.UpdateInvoice)
			r.Delete("/{id}", h.DeleteInvoice)
			r.Get("/{id}/preview", h.PreviewInvoice)
			r.Get("/{id}/print", h.PrintInvoice)
			r.Get("/{id}/export/png", h.ExportPNG)
			r.Get("/{id}/export/pdf", h.ExportPDF)
		})

		r.Route("/invoice-counter", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/next", h.NextInvoiceNumber)
		})

		r.Route("/payment-settings", func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/", h.PaymentSettings)
			r.Put("/", h.SavePaymentSettings)
		})
	})

	return mux
}
