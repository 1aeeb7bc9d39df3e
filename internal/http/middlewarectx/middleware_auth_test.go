package middlewarectx_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	validToken, err := maker.GenerateToken("user-1")
	require.NoError(t, err)

	otherMaker := jwt.NewJWTMaker("other-secret", time.Hour)
	foreignToken, err := otherMaker.GenerateToken("user-1")
	require.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("test-secret", time.Hour,
		jwt.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	expiredToken, err := expiredMaker.GenerateToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
		wantError      string
	}{
		{
			name:           "missing Authorization header",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "missing or invalid authorization header",
		},
		{
			name:           "empty bearer token",
			authHeader:     "Bearer ",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
		{
			name:           "malformed token",
			authHeader:     "Bearer not.a.token",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
		{
			name:           "token signed with another secret",
			authHeader:     "Bearer " + foreignToken,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid or expired token",
		},
		{
			name:           "valid token",
			authHeader:     "Bearer " + validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "user-1", userUID)
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.JWTMiddleware(maker, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantError != "" {
				var got response.Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, response.StatusError, got.Status)
				assert.Equal(t, tt.wantError, got.Error)
			}
		})
	}
}

func TestUserUIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middlewarectx.UserUIDFromContext(req.Context())
	assert.False(t, ok)

	_, ok = middlewarectx.UserUIDFromContext(middlewarectx.WithUserUID(req.Context(), ""))
	assert.False(t, ok)

	uid, ok := middlewarectx.UserUIDFromContext(middlewarectx.WithUserUID(req.Context(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)
}
