package list

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

// Service возвращает проекты пользователя.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Project, error)
}

// Handler обрабатывает GET /projects.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает обработчик списка проектов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает проекты текущего пользователя, новые первыми.
// @Summary Список проектов
// @Description Возвращает все проекты текущего пользователя, отсортированные по дате создания.
// @Tags Projects
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Project} "Список проектов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.list"

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

	projects, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list projects"))
		return
	}

	log.Debug("projects listed", slog.Int("count", len(projects)))
	render.JSON(w, r, response.Response{
		Status: response.StatusOK,
		Data:   projects,
	})
}
