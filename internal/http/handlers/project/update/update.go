package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/sl"
	"github.com/magabrotheeeer/portfolio-backend/internal/lib/validate"
	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/services/project"
)

// Service обновляет проект.
type Service interface {
	Update(ctx context.Context, userUID, id string, patch models.ProjectPatch) (*models.Project, error)
}

// Handler обрабатывает PUT /projects/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает обработчик обновления проекта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP частично обновляет проект текущего пользователя.
// Непереданные поля сохраняют прежние значения.
// @Summary Обновить проект
// @Description Обновляет переданные поля проекта. null в description или artifact_link очищает поле. Чужой проект возвращает 404.
// @Tags Projects
// @Accept  json
// @Produce  json
// @Param id path string true "ID проекта"
// @Param request body models.ProjectPatch true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Project} "Проект обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Проект не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /projects/{id} [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.update"

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

	id := chi.URLParam(r, "id")
	if err := uuid.Validate(id); err != nil {
		log.Info("malformed project id", slog.String("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(project.ErrNotFound.Error()))
		return
	}

	var patch models.ProjectPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	patch.Normalize()

	if err := h.validate.Struct(patch); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), userUID, id, patch)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			log.Info("project not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(project.ErrNotFound.Error()))
			return
		}
		log.Error("failed to update project", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update project"))
		return
	}

	log.Info("project updated", slog.String("id", id))
	render.JSON(w, r, response.OKWithData("project updated successfully", updated))
}
