package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/ratecraft/invoicing/internal/entity"
	"github.com/ratecraft/invoicing/internal/export"
	"github.com/ratecraft/invoicing/internal/service"
)

// @title Invoicing API
// @version 1.0
// @description Multi-tenant invoicing: records, sequential numbering, payment settings and document export
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Service interface {
	CreateInvoice(ctx context.Context, draft service.InvoiceDraft) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, id uuid.UUID, patch service.InvoicePatch) (entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	NextInvoiceNumber(ctx context.Context) (int64, string, error)
	PaymentSettings(ctx context.Context) (entity.PaymentSettings, error)
	SavePaymentSettings(ctx context.Context, methods []entity.PaymentMethod) (entity.PaymentSettings, error)
}

type Handler struct {
	s      Service
	raster *export.Rasterizer // nil when font setup failed, exports fall back to print
}

func NewHandler(s Service, raster *export.Rasterizer) *Handler {
	return &Handler{
		s:      s,
		raster: raster,
	}
}

type LineItemRequest struct {
	Description string `json:"description"`
	Hours       Count  `json:"hours"`
	Minutes     Count  `json:"minutes"`
	Rate        Money  `json:"rate"`
	Total       Money  `json:"total"`
	Link        string `json:"link"`
	LinkLabel   string `json:"link_label"`
	Note        string `json:"note"`
}

type AdjustmentRequest struct {
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
}

type PaymentMethodRequest struct {
	Type          string `json:"type"`
	Label         string `json:"label"`
	Value         string `json:"value"`
	IsLink        *bool  `json:"is_link"` // Omitted means true.
	QRCodeURL     string `json:"qr_code_url"`
	QRCodeData    string `json:"qr_code_data"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	SwiftCode     string `json:"swift_code"`
	RoutingNumber string `json:"routing_number"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber  string                 `json:"invoice_number"`
	ClientName     string                 `json:"client_name"`
	SubmittedDate  *time.Time             `json:"submitted_date"`
	DateRangeStart *time.Time             `json:"date_range_start"`
	DateRangeEnd   *time.Time             `json:"date_range_end"`
	LineItems      []LineItemRequest      `json:"line_items"`
	Adjustments    []AdjustmentRequest    `json:"adjustments"`
	PaymentDetails []PaymentMethodRequest `json:"payment_details"`
	Status         string                 `json:"status"`
	InvoiceStyle   string                 `json:"invoice_style"`
	Notes          string                 `json:"notes"`
}

type InvoiceEntity struct {
	ID             string                 `json:"id"`
	InvoiceNumber  string                 `json:"invoice_number"`
	ClientName     string                 `json:"client_name"`
	SubmittedDate  time.Time              `json:"submitted_date"`
	DateRangeStart *time.Time             `json:"date_range_start,omitempty"`
	DateRangeEnd   *time.Time             `json:"date_range_end,omitempty"`
	LineItems      []entity.LineItem      `json:"line_items"`
	Adjustments    []entity.Adjustment    `json:"adjustments"`
	PaymentDetails []entity.PaymentMethod `json:"payment_details"`
	Subtotal       string                 `json:"subtotal"`
	Total          string                 `json:"total"`
	Status         string                 `json:"status"`
	InvoiceStyle   string                 `json:"invoice_style"`
	Notes          string                 `json:"notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// CreateInvoice saves a new invoice
// @Summary Create invoice
// @Description Sanitizes the submitted invoice, recomputes totals and assigns the next invoice number when none is supplied
// @Tags invoices
// @Accept json
// @Produce json
// @Param CreateInvoiceRequest body CreateInvoiceRequest true "Invoice creation request"
// @Success 201 {object} InvoiceEntity
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 409 {object} ErrorResponse "Duplicate number or save already in progress"
// @Failure 500 {object} ErrorResponse "Failed to create invoice"
// @Router /invoices [post]
// @Security BearerAuth
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	draft := service.InvoiceDraft{
		Number:         req.InvoiceNumber,
		ClientName:     req.ClientName,
		PeriodStart:    req.DateRangeStart,
		PeriodEnd:      req.DateRangeEnd,
		LineItems:      lineItemsToEntity(req.LineItems),
		Adjustments:    adjustmentsToEntity(req.Adjustments),
		PaymentMethods: paymentMethodsToEntity(req.PaymentDetails),
		Status:         entity.InvoiceStatus(req.Status),
		Style:          entity.InvoiceStyle(req.InvoiceStyle),
		Notes:          req.Notes,
	}

	if req.SubmittedDate != nil {
		draft.SubmittedDate = *req.SubmittedDate
	}

	invoice, err := h.s.CreateInvoice(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Validation failed")
		case errors.Is(err, entity.ErrUnauthenticated):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
		case errors.Is(err, entity.ErrSaveInProgress):
			SendJSONErr(ctx, w, http.StatusConflict, err, "Save already in progress")
		case errors.Is(err, entity.ErrDuplicateNumber):
			SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice number already in use")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to create invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusCreated, invoiceToAPI(invoice))
}

type UpdateInvoiceRequest struct {
	ClientName     *string                 `json:"client_name"`
	SubmittedDate  *time.Time              `json:"submitted_date"`
	DateRangeStart *time.Time              `json:"date_range_start"`
	DateRangeEnd   *time.Time              `json:"date_range_end"`
	LineItems      *[]LineItemRequest      `json:"line_items"`
	Adjustments    *[]AdjustmentRequest    `json:"adjustments"`
	PaymentDetails *[]PaymentMethodRequest `json:"payment_details"`
	Status         *string                 `json:"status"`
	InvoiceStyle   *string                 `json:"invoice_style"`
	Notes          *string                 `json:"notes"`
}

// UpdateInvoice applies a partial update to an invoice
// @Summary Update invoice
// @Description Omitted fields keep their stored values; totals are recomputed after the merge
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param UpdateInvoiceRequest body UpdateInvoiceRequest true "Invoice update request"
// @Success 200 {object} InvoiceEntity
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Save already in progress"
// @Failure 500 {object} ErrorResponse "Failed to update invoice"
// @Router /invoices/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	var req UpdateInvoiceRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	patch := service.InvoicePatch{
		ClientName:    req.ClientName,
		SubmittedDate: req.SubmittedDate,
		PeriodStart:   req.DateRangeStart,
		PeriodEnd:     req.DateRangeEnd,
		Notes:         req.Notes,
	}

	if req.LineItems != nil {
		patch.LineItems = lineItemsToEntity(*req.LineItems)
	}

	if req.Adjustments != nil {
		patch.Adjustments = adjustmentsToEntity(*req.Adjustments)
	}

	if req.PaymentDetails != nil {
		patch.PaymentMethods = paymentMethodsToEntity(*req.PaymentDetails)
	}

	if req.Status != nil {
		status := entity.InvoiceStatus(*req.Status)
		patch.Status = &status
	}

	if req.InvoiceStyle != nil {
		style := entity.InvoiceStyle(*req.InvoiceStyle)
		patch.Style = &style
	}

	invoice, err := h.s.UpdateInvoice(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			SendJSONErr(ctx, w, http.StatusBadRequest, err, "Validation failed")
		case errors.Is(err, entity.ErrUnauthenticated):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Invoice not found")
		case errors.Is(err, entity.ErrSaveInProgress):
			SendJSONErr(ctx, w, http.StatusConflict, err, "Save already in progress")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to update invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(invoice))
}

type DeleteInvoiceResponse struct {
}

// DeleteInvoice removes an invoice
// @Summary Delete invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} DeleteInvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid invoice id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to delete invoice"
// @Router /invoices/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	err = h.s.DeleteInvoice(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUnauthenticated):
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Invoice not found")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to delete invoice")
		}

		return
	}

	SendJSON(ctx, w, http.StatusOK, DeleteInvoiceResponse{})
}

// Invoice returns a single invoice
// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} InvoiceEntity
// @Failure 400 {object} ErrorResponse "Invalid invoice id"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to get invoice"
// @Router /invoices/{id} [get]
// @Security BearerAuth
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid invoice id")
		return
	}

	invoice, err := h.s.Invoice(ctx, id)
	if err != nil {
		h.sendGetErr(ctx, w, err)
		return
	}

	SendJSON(ctx, w, http.StatusOK, invoiceToAPI(invoice))
}

type InvoicesResponse struct {
	Invoices   []InvoiceEntity `json:"invoices"`
	TotalCount int             `json:"total_count"`
}

// Invoices lists the caller's invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page, 1-based"
// @Param limit query int false "Page size, max 100"
// @Param sortBy query string false "created_at, submitted_date or total"
// @Param orderBy query string false "asc or desc"
// @Success 200 {object} InvoicesResponse
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Failed to list invoices"
// @Router /invoices [get]
// @Security BearerAuth
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoices, totalCount, err := h.s.Invoices(ctx, parseInvoiceFilter(r.URL.Query()))
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to list invoices")

		return
	}

	SendJSON(ctx, w, http.StatusOK, InvoicesResponse{
		Invoices:   invoicesToAPI(invoices),
		TotalCount: totalCount,
	})
}

type NextInvoiceNumberResponse struct {
	NextNumber        int64  `json:"next_number"`
	NextInvoiceNumber string `json:"next_invoice_number"`
}

// NextInvoiceNumber previews the next invoice number without consuming it
// @Summary Peek next invoice number
// @Tags counter
// @Produce json
// @Success 200 {object} NextInvoiceNumberResponse
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Failed to peek next number"
// @Router /invoice-counter/next [get]
// @Security BearerAuth
func (h *Handler) NextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, formatted, err := h.s.NextInvoiceNumber(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to peek next number")

		return
	}

	SendJSON(ctx, w, http.StatusOK, NextInvoiceNumberResponse{
		NextNumber:        n,
		NextInvoiceNumber: formatted,
	})
}

type PaymentSettingsResponse struct {
	PaymentDetails []entity.PaymentMethod `json:"payment_details"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PaymentSettings returns the caller's default payment methods
// @Summary Get payment settings
// @Tags payment-settings
// @Produce json
// @Success 200 {object} PaymentSettingsResponse
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Failed to get payment settings"
// @Router /payment-settings [get]
// @Security BearerAuth
func (h *Handler) PaymentSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.s.PaymentSettings(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get payment settings")

		return
	}

	SendJSON(ctx, w, http.StatusOK, PaymentSettingsResponse{
		PaymentDetails: settings.PaymentMethods,
		UpdatedAt:      settings.UpdatedAt,
	})
}

type SavePaymentSettingsRequest struct {
	PaymentDetails []PaymentMethodRequest `json:"payment_details"`
}

// SavePaymentSettings replaces the caller's default payment methods
// @Summary Save payment settings
// @Description Saved invoices keep their own copies; this only affects invoices created afterwards
// @Tags payment-settings
// @Accept json
// @Produce json
// @Param SavePaymentSettingsRequest body SavePaymentSettingsRequest true "Payment settings"
// @Success 200 {object} PaymentSettingsResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Failed to save payment settings"
// @Router /payment-settings [put]
// @Security BearerAuth
func (h *Handler) SavePaymentSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SavePaymentSettingsRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	settings, err := h.s.SavePaymentSettings(ctx, paymentMethodsToEntity(req.PaymentDetails))
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to save payment settings")

		return
	}

	SendJSON(ctx, w, http.StatusOK, PaymentSettingsResponse{
		PaymentDetails: settings.PaymentMethods,
		UpdatedAt:      settings.UpdatedAt,
	})
}

// HealthHandler - returns service health status.
// @Summary Health check
// @Tags health
// @Accept text/plain
// @Produce text/plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is not healthy")
		return
	}
}

func (h *Handler) sendGetErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrUnauthenticated):
		SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Not authenticated")
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, "Invoice not found")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get invoice")
	}
}

func parseInvoiceFilter(url url.Values) entity.InvoiceFilter {
	const (
		defaultLimit uint64 = 10
		maxLimit     uint64 = 100
		defaultPage  uint64 = 1
	)

	status := entity.InvoiceStatus(url.Get("status"))
	qLimit := url.Get("limit")
	qPage := url.Get("page")
	sortBy := entity.InvoiceSortCol(url.Get("sortBy"))
	orderBy := entity.OrderByCol(url.Get("orderBy"))

	limit, err := strconv.ParseUint(qLimit, 10, 64)
	if err != nil || limit == 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err := strconv.ParseUint(qPage, 10, 64)
	if err != nil || page == 0 {
		page = defaultPage
	}

	if !sortBy.IsValid() {
		sortBy = entity.SortByCreatedAt
	}

	if !orderBy.IsValid() {
		orderBy = entity.DESC
	}

	filter := entity.InvoiceFilter{
		Page:    page,
		Limit:   limit,
		SortBy:  sortBy,
		OrderBy: orderBy,
	}

	if status.IsValid() {
		filter.Status = &status
	}

	return filter
}

func lineItemsToEntity(items []LineItemRequest) []entity.LineItem {
	res := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		res = append(res, entity.LineItem{
			Description: item.Description,
			Hours:       int(item.Hours),
			Minutes:     int(item.Minutes),
			Rate:        item.Rate.Decimal,
			Total:       item.Total.Decimal,
			Link:        item.Link,
			LinkLabel:   item.LinkLabel,
			Note:        item.Note,
		})
	}

	return res
}

func adjustmentsToEntity(adjustments []AdjustmentRequest) []entity.Adjustment {
	res := make([]entity.Adjustment, 0, len(adjustments))
	for _, adj := range adjustments {
		res = append(res, entity.Adjustment{
			Description: adj.Description,
			Amount:      adj.Amount.Decimal,
		})
	}

	return res
}

func paymentMethodsToEntity(methods []PaymentMethodRequest) []entity.PaymentMethod {
	res := make([]entity.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		// Values render as links unless the client says otherwise.
		isLink := true
		if m.IsLink != nil {
			isLink = *m.IsLink
		}

		res = append(res, entity.PaymentMethod{
			Type:          entity.PaymentMethodType(m.Type),
			Label:         m.Label,
			Value:         m.Value,
			IsLink:        isLink,
			QRCodeURL:     m.QRCodeURL,
			QRCodeData:    m.QRCodeData,
			BankName:      m.BankName,
			AccountNumber: m.AccountNumber,
			SwiftCode:     m.SwiftCode,
			RoutingNumber: m.RoutingNumber,
		})
	}

	return res
}

func invoiceToAPI(inv entity.Invoice) InvoiceEntity {
	return InvoiceEntity{
		ID:             inv.ID.String(),
		InvoiceNumber:  inv.Number,
		ClientName:     inv.ClientName,
		SubmittedDate:  inv.SubmittedDate,
		DateRangeStart: inv.PeriodStart,
		DateRangeEnd:   inv.PeriodEnd,
		LineItems:      inv.LineItems,
		Adjustments:    inv.Adjustments,
		PaymentDetails: inv.PaymentMethods,
		Subtotal:       inv.Subtotal.String(),
		Total:          inv.Total.String(),
		Status:         inv.Status.String(),
		InvoiceStyle:   inv.Style.String(),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func invoicesToAPI(invoices []entity.Invoice) []InvoiceEntity {
	res := make([]InvoiceEntity, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, invoiceToAPI(inv))
	}

	return res
}
