package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", 5*time.Minute, time.Hour)

	token, err := issuer.Access(Principal{UserID: 7, Username: "ana"})
	require.NoError(t, err)

	claims, err := issuer.Parse(token, TypeAccess)
	require.NoError(t, err)

	assert.Equal(t, Principal{UserID: 7, Username: "ana"}, claims.Principal())
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_Parse_Rejects(t *testing.T) {
	issuer := NewIssuer("secret", 5*time.Minute, time.Hour)

	refresh, err := issuer.Refresh(Principal{UserID: 1, Username: "ana"})
	require.NoError(t, err)

	other, err := NewIssuer("other", 5*time.Minute, time.Hour).Access(Principal{UserID: 1})
	require.NoError(t, err)

	expiring := NewIssuer("secret", time.Minute, time.Hour)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	expired, err := expiring.Access(Principal{UserID: 1})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "WrongType", token: refresh},
		{name: "WrongSecret", token: other},
		{name: "Expired", token: expired},
		{name: "Garbage", token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(tt.token, TypeAccess)
			assert.ErrorIs(t, err, fleet.ErrUnauthorized)
		})
	}
}

func TestMiddleware(t *testing.T) {
	issuer := NewIssuer("secret", 5*time.Minute, time.Hour)

	access, err := issuer.Access(Principal{UserID: 2, Username: "luis"})
	require.NoError(t, err)

	var seen Principal

	handler := Middleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "Missing", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Token " + access, wantStatus: http.StatusUnauthorized},
		{name: "Invalid", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "Valid", header: "Bearer " + access, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/camiones", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, "luis", seen.Username)
}
