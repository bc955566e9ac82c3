package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ratecraft/invoicing/internal/api"
	"github.com/ratecraft/invoicing/internal/entity"
	"github.com/ratecraft/invoicing/internal/export"
	"github.com/ratecraft/invoicing/internal/mocks"
	"github.com/ratecraft/invoicing/internal/service"
)

type env struct {
	svc    *mocks.MockService
	server *httptest.Server
}

func newEnv(t *testing.T, raster *export.Rasterizer) env {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	auth := mocks.NewMockAuthService(ctrl)

	user := entity.User{ID: uuid.Must(uuid.NewV4()), InvoiceTemplate: entity.InvoiceStyleClassic}
	auth.EXPECT().User(gomock.Any(), "test-token").Return(user, nil).AnyTimes()

	router := api.NewRouter(api.NewHandler(svc, raster), api.NewMiddleware(auth))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return env{svc: svc, server: server}
}

func (e env) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func testInvoice() entity.Invoice {
	return entity.Invoice{
		ID:         uuid.Must(uuid.NewV4()),
		Number:     "RC-IN-0001",
		ClientName: "Acme Corp",
		LineItems: []entity.LineItem{
			{Description: "Work", Hours: 2, Rate: decimal.RequireFromString("80"), Total: decimal.RequireFromString("160")},
		},
		Subtotal: decimal.RequireFromString("160"),
		Total:    decimal.RequireFromString("160"),
		Status:   entity.InvoiceStatusDraft,
		Style:    entity.InvoiceStyleClassic,
	}
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, draft service.InvoiceDraft) (entity.Invoice, error) {
			require.Equal(t, "Acme Corp", draft.ClientName)
			require.Len(t, draft.LineItems, 1)
			require.Equal(t, 2, draft.LineItems[0].Hours)
			require.True(t, draft.LineItems[0].Rate.Equal(decimal.RequireFromString("80")))
			return testInvoice(), nil
		})

	// Numeric fields arrive as strings, the API coerces them.
	resp := e.do(t, http.MethodPost, "/api/invoices", `{
		"client_name": "Acme Corp",
		"line_items": [{"description": "Work", "hours": "2", "rate": "80", "total": "160"}]
	}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got api.InvoiceEntity

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "RC-IN-0001", got.InvoiceNumber)
	require.Equal(t, "160", got.Total)
}

func TestHandler_CreateInvoice_LenientCoercion(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, draft service.InvoiceDraft) (entity.Invoice, error) {
			// Garbage numbers coerce to zero instead of failing the request.
			require.True(t, draft.LineItems[0].Rate.IsZero())
			require.Zero(t, draft.LineItems[0].Hours)
			return testInvoice(), nil
		})

	resp := e.do(t, http.MethodPost, "/api/invoices", `{
		"client_name": "Acme Corp",
		"line_items": [{"description": "Work", "hours": "abc", "rate": "not a number"}]
	}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHandler_CreateInvoice_PaymentMethodLinkDefault(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, draft service.InvoiceDraft) (entity.Invoice, error) {
			require.Len(t, draft.PaymentMethods, 2)
			require.True(t, draft.PaymentMethods[0].IsLink, "omitted is_link must default to true")
			require.False(t, draft.PaymentMethods[1].IsLink, "explicit false must stick")
			return testInvoice(), nil
		})

	resp := e.do(t, http.MethodPost, "/api/invoices", `{
		"client_name": "Acme Corp",
		"line_items": [{"description": "Work", "hours": 1, "rate": 80}],
		"payment_details": [
			{"type": "paypal", "label": "PayPal", "value": "https://paypal.me/x"},
			{"type": "other", "label": "Cash", "value": "in person", "is_link": false}
		]
	}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHandler_CreateInvoice_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation",
			err:      fmt.Errorf("%w: client name is required", entity.ErrValidation),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Validation failed",
		},
		{
			name:     "save in progress",
			err:      entity.ErrSaveInProgress,
			wantCode: http.StatusConflict,
			wantMsg:  "Save already in progress",
		},
		{
			name:     "duplicate number",
			err:      fmt.Errorf("invoice number %q: %w", "RC-IN-0001", entity.ErrDuplicateNumber),
			wantCode: http.StatusConflict,
			wantMsg:  "Invoice number already in use",
		},
		{
			name:     "internal",
			err:      fmt.Errorf("create invoice: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Failed to create invoice",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEnv(t, nil)
			e.svc.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(entity.Invoice{}, tt.err)

			resp := e.do(t, http.MethodPost, "/api/invoices", `{"client_name": "Acme Corp"}`)
			require.Equal(t, tt.wantCode, resp.StatusCode)

			var body api.ErrorResponse

			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestHandler_Unauthorized(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	req, err := http.NewRequest(http.MethodGet, e.server.URL+"/api/invoices", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_RejectedToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	auth := mocks.NewMockAuthService(ctrl)

	auth.EXPECT().User(gomock.Any(), "revoked-token").
		Return(entity.User{}, fmt.Errorf("validate token: %w", entity.ErrForbidden))

	router := api.NewRouter(api.NewHandler(svc, nil), api.NewMiddleware(auth))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/invoices", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer revoked-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// A token the auth service rejects is a 401, not a server error.
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body api.ErrorResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Invalid token", body.Message)
}

func TestHandler_Invoice_NotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	id := uuid.Must(uuid.NewV4())
	e.svc.EXPECT().Invoice(gomock.Any(), id).Return(entity.Invoice{}, entity.ErrNotFound)

	resp := e.do(t, http.MethodGet, "/api/invoices/"+id.String(), "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_Invoice_BadID(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	resp := e.do(t, http.MethodGet, "/api/invoices/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UpdateInvoice_PartialBody(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	id := uuid.Must(uuid.NewV4())

	e.svc.EXPECT().UpdateInvoice(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, patch service.InvoicePatch) (entity.Invoice, error) {
			// Only the fields present in the body make it into the patch.
			require.NotNil(t, patch.Status)
			require.Equal(t, entity.InvoiceStatusPaid, *patch.Status)
			require.Nil(t, patch.ClientName)
			require.Nil(t, patch.LineItems)
			return testInvoice(), nil
		})

	resp := e.do(t, http.MethodPut, "/api/invoices/"+id.String(), `{"status": "paid"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Invoices(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().Invoices(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f entity.InvoiceFilter) ([]entity.Invoice, int, error) {
			require.NotNil(t, f.Status)
			require.Equal(t, entity.InvoiceStatusPaid, *f.Status)
			require.EqualValues(t, 2, f.Page)
			require.EqualValues(t, 5, f.Limit)
			return []entity.Invoice{testInvoice()}, 11, nil
		})

	resp := e.do(t, http.MethodGet, "/api/invoices?status=paid&page=2&limit=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.InvoicesResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Invoices, 1)
	require.Equal(t, 11, got.TotalCount)
}

func TestHandler_NextInvoiceNumber(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().NextInvoiceNumber(gomock.Any()).Return(int64(5), "RC-IN-0005", nil)

	resp := e.do(t, http.MethodGet, "/api/invoice-counter/next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.NextInvoiceNumberResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.EqualValues(t, 5, got.NextNumber)
	require.Equal(t, "RC-IN-0005", got.NextInvoiceNumber)
}

func TestHandler_PaymentSettings(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	e.svc.EXPECT().SavePaymentSettings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, methods []entity.PaymentMethod) (entity.PaymentSettings, error) {
			require.Len(t, methods, 1)
			require.Equal(t, entity.PaymentMethodWise, methods[0].Type)
			return entity.PaymentSettings{PaymentMethods: methods}, nil
		})

	resp := e.do(t, http.MethodPut, "/api/payment-settings", `{
		"payment_details": [{"type": "wise", "label": "Wise", "value": "https://wise.com/pay/me", "is_link": true}]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.PaymentSettingsResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.PaymentDetails, 1)
}

func TestHandler_ExportPDF(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	inv := testInvoice()
	e.svc.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	resp := e.do(t, http.MethodGet, "/api/invoices/"+inv.ID.String()+"/export/pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "RC-IN-0001.pdf")
}

func TestHandler_ExportPNG_FallsBackWithoutRasterizer(t *testing.T) {
	t.Parallel()

	// No rasterizer configured: the PNG route degrades to the print
	// document and flags it in a header.
	e := newEnv(t, nil)

	inv := testInvoice()
	e.svc.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	resp := e.do(t, http.MethodGet, "/api/invoices/"+inv.ID.String()+"/export/png", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "print", resp.Header.Get("X-Export-Fallback"))
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHandler_ExportPNG(t *testing.T) {
	t.Parallel()

	raster, err := export.NewRasterizer()
	require.NoError(t, err)

	e := newEnv(t, raster)

	inv := testInvoice()
	e.svc.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	resp := e.do(t, http.MethodGet, "/api/invoices/"+inv.ID.String()+"/export/png", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.Empty(t, resp.Header.Get("X-Export-Fallback"))
}

func TestHandler_Preview(t *testing.T) {
	t.Parallel()

	e := newEnv(t, nil)

	inv := testInvoice()
	e.svc.EXPECT().Invoice(gomock.Any(), inv.ID).Return(inv, nil)

	resp := e.do(t, http.MethodGet, "/api/invoices/"+inv.ID.String()+"/preview", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
