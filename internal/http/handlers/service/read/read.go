// Package read реализует HTTP-обработчик получения услуги каталога по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-hub/internal/http/response"
	"github.com/magabrotheeeer/subscription-hub/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

// Handler обрабатывает запросы на получение услуги по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения услуги.
type Service interface {
	Get(ctx context.Context, id int) (*models.Service, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить услугу
// @Description Возвращает услугу каталога по её ID.
// @Tags Services
// @Produce  json
// @Param id path int true "ID услуги"
// @Success 200 {object} map[string]any "Данные услуги"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Услуга не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /services/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	service, err := h.service.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("service not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("service not found"))
		return
	}
	if err != nil {
		log.Error("failed to read service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read service"))
		return
	}

	log.Info("success to read service", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"service": service,
	}))
}
