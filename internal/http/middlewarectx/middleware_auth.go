// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware проверяет Bearer-токен из заголовка Authorization и в случае успеха
// кладёт идентификатор пользователя в контекст запроса. Привязка живёт только
// в рамках одного запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID ключ идентификатора пользователя в контексте.
const UserUID Key = "user_uid"

const bearerPrefix = "Bearer "

// TokenVerifier проверяет токен и возвращает его claims.
type TokenVerifier interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// WithUserUID возвращает контекст с привязанным идентификатором пользователя.
func WithUserUID(ctx context.Context, userUID string) context.Context {
	return context.WithValue(ctx, UserUID, userUID)
}

// UserUIDFromContext возвращает идентификатор пользователя, привязанный JWTMiddleware.
func UserUIDFromContext(ctx context.Context) (string, bool) {
	userUID, ok := ctx.Value(UserUID).(string)
	return userUID, ok && userUID != ""
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
// При отсутствии или невалидности токена отвечает 401 Unauthorized.
func JWTMiddleware(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

			claims, err := verifier.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserUID(r.Context(), claims.UserUID())))
		})
	}
}
