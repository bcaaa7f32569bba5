// Package list реализует HTTP-обработчик получения каталога услуг.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-hub/internal/http/response"
	"github.com/magabrotheeeer/subscription-hub/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// Handler обрабатывает запросы на получение каталога услуг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Service, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог услуг
// @Description Возвращает все услуги каталога.
// @Tags Services
// @Produce  json
// @Success 200 {object} map[string]any "Список услуг"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	services, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list services"))
		return
	}

	log.Info("success to list services", slog.Int("count", len(services)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"services": services,
	}))
}
