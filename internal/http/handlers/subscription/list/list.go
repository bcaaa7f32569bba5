// Package list реализует HTTP-обработчик получения подписок пользователя,
// дополненных названием и описанием услуги.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-hub/internal/http/response"
	"github.com/magabrotheeeer/subscription-hub/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// Handler обрабатывает запросы на получение списка подписок пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения подписок.
type Service interface {
	List(ctx context.Context, userID int) ([]*models.SubscriptionInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подписки пользователя
// @Description Возвращает все подписки пользователя с данными услуг.
// @Tags Subscriptions
// @Produce  json
// @Param id path int true "ID пользователя"
// @Success 200 {object} map[string]any "Список подписок"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

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

	subscriptions, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}
	if subscriptions == nil {
		subscriptions = []*models.SubscriptionInfo{}
	}

	log.Info("success to list subscriptions",
		slog.Int("user_id", userID), slog.Int("count", len(subscriptions)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscriptions": subscriptions,
	}))
}
