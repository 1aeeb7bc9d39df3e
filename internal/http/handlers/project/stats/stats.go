package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
)

// Service считает статистику проектов пользователя.
type Service interface {
	Stats(ctx context.Context, userUID string) (*models.ProjectStats, error)
}

// Handler обрабатывает GET /projects/stats.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает обработчик статистики.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает статистику проектов текущего пользователя.
// @Summary Статистика проектов
// @Description Общее число проектов, число проектов за последние 30 дней и распределение по месяцам (UTC).
// @Tags Projects
// @Produce  json
// @Success 200 {object} response.Response{data=models.ProjectStats} "Статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects/stats [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.stats"

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

	result, err := h.service.Stats(r.Context(), userUID)
	if err != nil {
		log.Error("failed to compute stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to compute project stats"))
		return
	}

	render.JSON(w, r, response.Response{
		Status: response.StatusOK,
		Data:   result,
	})
}
