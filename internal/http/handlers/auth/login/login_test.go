package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	result := &models.AuthResult{
		User:  models.UserSummary{UUID: "u1", Username: "alice", Email: "alice@x.com"},
		Token: "tok",
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantError      string
		wantToken      string
	}{
		{
			name:        "valid login",
			requestBody: Request{Email: "alice@x.com", Password: "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "alice@x.com", "secret1").Return(result, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantToken:      "tok",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing email",
			requestBody:    Request{Password: "secret1"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field email is a required field",
		},
		{
			name:        "invalid credentials",
			requestBody: Request{Email: "alice@x.com", Password: "wrong"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "alice@x.com", "wrong").
					Return(nil, fmt.Errorf("services.auth.Login: %w", auth.ErrInvalidCredentials)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      auth.ErrInvalidCredentials.Error(),
		},
		{
			name:        "internal error",
			requestBody: Request{Email: "alice@x.com", Password: "secret1"},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "alice@x.com", "secret1").Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(serviceMock)
			}
			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got struct {
				Status string `json:"status"`
				Error  string `json:"error"`
				Data   struct {
					Token string `json:"token"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantError, got.Error)
			assert.Equal(t, tt.wantToken, got.Data.Token)
			if tt.wantError != "" {
				assert.Equal(t, "Error", got.Status)
			} else {
				assert.Equal(t, "OK", got.Status)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
