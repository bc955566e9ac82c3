package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ratecraft/invoicing/internal/clients/auth"
	"github.com/ratecraft/invoicing/internal/entity"
)

func TestClient_User(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/validate", r.URL.Path)

		_, _ = fmt.Fprint(w, `{
			"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"firstName": "Ada",
			"lastName": "Lovelace",
			"email": "ada@example.com",
			"invoiceTemplate": "compact"
		}`)
	}))
	t.Cleanup(server.Close)

	client := auth.NewClient(server.URL)

	user, err := client.User(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", user.ID.String())
	require.Equal(t, "Ada", user.FirstName)
	require.Equal(t, entity.InvoiceStyleCompact, user.InvoiceTemplate)
}

func TestClient_User_RejectedToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int
	}{
		{name: "unauthorized", code: http.StatusUnauthorized},
		{name: "forbidden", code: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			t.Cleanup(server.Close)

			client := auth.NewClient(server.URL)

			_, err := client.User(context.Background(), "revoked")
			require.ErrorIs(t, err, entity.ErrForbidden)
		})
	}
}

func TestClient_User_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := auth.NewClient(server.URL)

	_, err := client.User(context.Background(), "token")
	require.Error(t, err)
	require.NotErrorIs(t, err, entity.ErrForbidden)
}
