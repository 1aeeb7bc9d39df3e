package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/services/auth"
)

// Service возвращает профиль пользователя.
type Service interface {
	Profile(ctx context.Context, userUID string) (*models.UserSummary, error)
}

// Handler обрабатывает GET /auth/me.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает обработчик профиля.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает профиль текущего пользователя.
// @Summary Профиль пользователя
// @Description Возвращает id, имя и email пользователя из токена.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response{data=models.UserSummary} "Профиль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/me [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	profile, err := h.service.Profile(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			log.Info("user from token not found", slog.String("user_id", userUID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(auth.ErrUserNotFound.Error()))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load profile"))
		return
	}

	render.JSON(w, r, response.OKWithData("", profile))
}
