package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ratecraft/invoicing/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/repository.go -package=mocks

type Repository interface {
	CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	UpdateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error)
	DeleteInvoice(ctx context.Context, id, ownerID uuid.UUID) error
	Invoice(ctx context.Context, id, ownerID uuid.UUID) (entity.Invoice, error)
	Invoices(ctx context.Context, ownerID uuid.UUID, f entity.InvoiceFilter) ([]entity.Invoice, int, error)
	NextNumber(ctx context.Context, ownerID uuid.UUID) (int64, error)
	AllocateNumber(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ObserveNumber(ctx context.Context, ownerID uuid.UUID, n int64) error
	PaymentSettings(ctx context.Context, ownerID uuid.UUID) (entity.PaymentSettings, error)
	UpsertPaymentSettings(ctx context.Context, settings entity.PaymentSettings) (entity.PaymentSettings, error)
}

type Service struct {
	repo Repository

	mu      sync.Mutex
	pending map[uuid.UUID]struct{} // owners with a save in flight
}

func New(repo Repository) *Service {
	return &Service{
		repo:    repo,
		pending: make(map[uuid.UUID]struct{}),
	}
}

// InvoiceDraft carries the raw editable fields of a create request. Totals
// are absent on purpose: they are always recomputed server-side.
type InvoiceDraft struct {
	Number         string
	ClientName     string
	SubmittedDate  time.Time
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	LineItems      []entity.LineItem
	Adjustments    []entity.Adjustment
	PaymentMethods []entity.PaymentMethod
	Status         entity.InvoiceStatus
	Style          entity.InvoiceStyle
	Notes          string
}

// InvoicePatch is a partial update. Nil fields fall back to the stored
// invoice, so a status-only update never erases line items.
type InvoicePatch struct {
	ClientName     *string
	SubmittedDate  *time.Time
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	LineItems      []entity.LineItem
	Adjustments    []entity.Adjustment
	PaymentMethods []entity.PaymentMethod
	Status         *entity.InvoiceStatus
	Style          *entity.InvoiceStyle
	Notes          *string
}

// CreateInvoice sanitizes the draft, recomputes totals, assigns an invoice
// number (allocating one when the caller did not supply it) and persists the
// invoice. A second save for the same owner while one is in flight is
// rejected with ErrSaveInProgress rather than queued.
func (s *Service) CreateInvoice(ctx context.Context, draft InvoiceDraft) (entity.Invoice, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	if !s.beginSave(user.ID) {
		return entity.Invoice{}, entity.ErrSaveInProgress
	}
	defer s.endSave(user.ID)

	clientName := strings.TrimSpace(draft.ClientName)
	if clientName == "" {
		return entity.Invoice{}, fmt.Errorf("%w: client name is required", entity.ErrValidation)
	}

	lineItems := entity.SanitizeLineItems(draft.LineItems)
	if len(lineItems) == 0 {
		return entity.Invoice{}, fmt.Errorf("%w: add at least one line item", entity.ErrValidation)
	}

	adjustments := entity.SanitizeAdjustments(draft.Adjustments)
	paymentMethods := entity.SanitizePaymentMethods(draft.PaymentMethods)

	number := draft.Number

	if number == "" {
		n, err := s.repo.AllocateNumber(ctx, user.ID)
		if err != nil {
			return entity.Invoice{}, fmt.Errorf("allocate invoice number: %w", err)
		}

		number = entity.FormatInvoiceNumber(n)
	} else if n, ok := entity.InvoiceNumberOrdinal(number); ok {
		err := s.repo.ObserveNumber(ctx, user.ID, n)
		if err != nil {
			return entity.Invoice{}, fmt.Errorf("observe invoice number %d: %w", n, err)
		}
	}

	subtotal := entity.Subtotal(lineItems)
	total := entity.GrandTotal(subtotal, entity.AdjustmentsTotal(adjustments))

	now := time.Now()

	submitted := draft.SubmittedDate
	if submitted.IsZero() {
		submitted = now
	}

	status := draft.Status
	if !status.IsValid() {
		status = entity.InvoiceStatusDraft
	}

	style := draft.Style
	if !style.IsValid() {
		style = user.InvoiceTemplate
	}

	if !style.IsValid() {
		style = entity.InvoiceStyleClassic
	}

	inv := entity.Invoice{
		ID:             uuid.Must(uuid.NewV4()),
		OwnerID:        user.ID,
		Number:         number,
		ClientName:     clientName,
		SubmittedDate:  submitted,
		PeriodStart:    draft.PeriodStart,
		PeriodEnd:      draft.PeriodEnd,
		LineItems:      lineItems,
		Adjustments:    adjustments,
		PaymentMethods: paymentMethods,
		Subtotal:       subtotal,
		Total:          total,
		Status:         status,
		Style:          style,
		Notes:          draft.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	inv, err = s.repo.CreateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	slog.InfoContext(ctx, "invoice created", "invoice_number", inv.Number, "total", inv.Total.String())

	return inv, nil
}

// UpdateInvoice merges the patch over the stored invoice, re-sanitizes and
// recomputes, and writes the result back. Omitted fields keep their stored
// values.
func (s *Service) UpdateInvoice(ctx context.Context, id uuid.UUID, patch InvoicePatch) (entity.Invoice, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	if !s.beginSave(user.ID) {
		return entity.Invoice{}, entity.ErrSaveInProgress
	}
	defer s.endSave(user.ID)

	stored, err := s.repo.Invoice(ctx, id, user.ID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %s: %w", id, err)
	}

	inv := mergePatch(stored, patch)

	inv.ClientName = strings.TrimSpace(inv.ClientName)
	if inv.ClientName == "" {
		return entity.Invoice{}, fmt.Errorf("%w: client name is required", entity.ErrValidation)
	}

	inv.LineItems = entity.SanitizeLineItems(inv.LineItems)
	if len(inv.LineItems) == 0 {
		return entity.Invoice{}, fmt.Errorf("%w: add at least one line item", entity.ErrValidation)
	}

	inv.Adjustments = entity.SanitizeAdjustments(inv.Adjustments)
	inv.PaymentMethods = entity.SanitizePaymentMethods(inv.PaymentMethods)

	inv.Subtotal = entity.Subtotal(inv.LineItems)
	inv.Total = entity.GrandTotal(inv.Subtotal, entity.AdjustmentsTotal(inv.Adjustments))
	inv.UpdatedAt = time.Now()

	inv, err = s.repo.UpdateInvoice(ctx, inv)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("update invoice %s: %w", id, err)
	}

	return inv, nil
}

func mergePatch(inv entity.Invoice, patch InvoicePatch) entity.Invoice {
	if patch.ClientName != nil {
		inv.ClientName = *patch.ClientName
	}

	if patch.SubmittedDate != nil {
		inv.SubmittedDate = *patch.SubmittedDate
	}

	if patch.PeriodStart != nil {
		inv.PeriodStart = patch.PeriodStart
	}

	if patch.PeriodEnd != nil {
		inv.PeriodEnd = patch.PeriodEnd
	}

	if patch.LineItems != nil {
		inv.LineItems = patch.LineItems
	}

	if patch.Adjustments != nil {
		inv.Adjustments = patch.Adjustments
	}

	if patch.PaymentMethods != nil {
		inv.PaymentMethods = patch.PaymentMethods
	}

	if patch.Status != nil && patch.Status.IsValid() {
		inv.Status = *patch.Status
	}

	if patch.Style != nil && patch.Style.IsValid() {
		inv.Style = *patch.Style
	}

	if patch.Notes != nil {
		inv.Notes = *patch.Notes
	}

	return inv
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return err
	}

	err = s.repo.DeleteInvoice(ctx, id, user.ID)
	if err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}

	return nil
}

func (s *Service) Invoice(ctx context.Context, id uuid.UUID) (entity.Invoice, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.Invoice{}, err
	}

	inv, err := s.repo.Invoice(ctx, id, user.ID)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice %s: %w", id, err)
	}

	return inv, nil
}

func (s *Service) Invoices(ctx context.Context, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	invoices, count, err := s.repo.Invoices(ctx, user.ID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}

	return invoices, count, nil
}

// NextInvoiceNumber previews the number the next save would receive without
// consuming it.
func (s *Service) NextInvoiceNumber(ctx context.Context) (int64, string, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return 0, "", err
	}

	n, err := s.repo.NextNumber(ctx, user.ID)
	if err != nil {
		return 0, "", fmt.Errorf("peek next invoice number: %w", err)
	}

	return n, entity.FormatInvoiceNumber(n), nil
}

func (s *Service) PaymentSettings(ctx context.Context) (entity.PaymentSettings, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.PaymentSettings{}, err
	}

	settings, err := s.repo.PaymentSettings(ctx, user.ID)
	if err != nil {
		return entity.PaymentSettings{}, fmt.Errorf("get payment settings: %w", err)
	}

	return settings, nil
}

func (s *Service) SavePaymentSettings(ctx context.Context, methods []entity.PaymentMethod) (entity.PaymentSettings, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return entity.PaymentSettings{}, err
	}

	settings := entity.PaymentSettings{
		OwnerID:        user.ID,
		PaymentMethods: entity.SanitizePaymentMethods(methods),
		UpdatedAt:      time.Now(),
	}

	settings, err = s.repo.UpsertPaymentSettings(ctx, settings)
	if err != nil {
		return entity.PaymentSettings{}, fmt.Errorf("save payment settings: %w", err)
	}

	return settings, nil
}

func (s *Service) beginSave(ownerID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[ownerID]; ok {
		return false
	}

	s.pending[ownerID] = struct{}{}

	return true
}

func (s *Service) endSave(ownerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, ownerID)
}
