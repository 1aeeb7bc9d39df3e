package home

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
)

// Message текст ответа корневого маршрута.
const Message = "portfolio API is running"

// ServeHTTP сообщает, что API запущено.
// @Summary Статус API
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "API запущено"
// @Router / [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK(Message))
}
