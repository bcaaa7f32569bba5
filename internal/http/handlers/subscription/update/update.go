// Package update реализует HTTP-обработчик частичного обновления подписки.
//
// Изменяемы только флаг активности и дата окончания; пустой патч
// отклоняется со статусом 400 до обращения к бизнес-логике.
package update

import (
	"context"
	"encoding/json"
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
	subservice "github.com/magabrotheeeer/subscription-hub/internal/services/subscription"
)

// Handler управляет HTTP-запросами на обновление подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления подписки.
type Service interface {
	Update(ctx context.Context, userID, serviceID int, req models.UpdateSubscriptionRequest) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить подписку
// @Description Частично обновляет подписку: флаг активности и дату окончания.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param service_id path int true "ID услуги"
// @Param request body models.UpdateSubscriptionRequest true "Изменяемые поля"
// @Success 200 {object} map[string]any "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустой патч"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/subscriptions/{service_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"

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

	var req models.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if req.IsEmpty() {
		log.Info("empty update request")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no update data provided"))
		return
	}

	count, err := h.service.Update(r.Context(), userID, serviceID, req)
	if errors.Is(err, subservice.ErrInvalidDate) {
		log.Info("invalid date in request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("dates must use format YYYY-MM-DD"))
		return
	}
	if err != nil {
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription"))
		return
	}
	if count == 0 {
		log.Info("subscription not found",
			slog.Int("user_id", userID), slog.Int("service_id", serviceID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("subscription not found"))
		return
	}

	log.Info("success to update subscription",
		slog.Int("user_id", userID), slog.Int("service_id", serviceID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
	}))
}
