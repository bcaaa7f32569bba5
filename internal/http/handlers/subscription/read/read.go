// Package read реализует HTTP-обработчик получения подписки пары
// пользователь–услуга.
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

// Handler обрабатывает запросы на получение подписки пары.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Get(ctx context.Context, userID, serviceID int) (*models.SubscriptionInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить подписку
// @Description Возвращает подписку пользователя на услугу с данными услуги.
// @Tags Subscriptions
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param service_id path int true "ID услуги"
// @Success 200 {object} map[string]any "Данные подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/subscriptions/{service_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}
	serviceID, err := strconv.Atoi(chi.URLParam(r, "service_id"))
	if err != nil {
		log.Error("failed to decode service_id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode service_id from url"))
		return
	}

	subscription, err := h.service.Get(r.Context(), userID, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("subscription not found",
			slog.Int("user_id", userID), slog.Int("service_id", serviceID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	}
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription"))
		return
	}

	log.Info("success to read subscription",
		slog.Int("user_id", userID), slog.Int("service_id", serviceID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": subscription,
	}))
}
