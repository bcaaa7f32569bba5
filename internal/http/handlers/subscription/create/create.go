// Package create реализует HTTP-обработчик подписки пользователя на услугу.
//
// Существование пользователя и услуги проверяется заранее, чтобы дать
// понятный ответ 404; источником корректности при гонках остаются
// ограничения базы — уникальный индекс пары и внешние ключи, поэтому
// их нарушения тоже переводятся в ответы 409 и 404.
package create

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
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-hub/internal/http/response"
	"github.com/magabrotheeeer/subscription-hub/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
	subservice "github.com/magabrotheeeer/subscription-hub/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	users    UserProvider
	catalog  CatalogProvider
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания подписки.
type Service interface {
	Create(ctx context.Context, userID int, req models.DummySubscription) (int, error)
}

// UserProvider отдаёт пользователя для предварительной проверки существования.
type UserProvider interface {
	Get(ctx context.Context, id int) (*models.User, error)
}

// CatalogProvider отдаёт услугу для предварительной проверки существования.
type CatalogProvider interface {
	Get(ctx context.Context, id int) (*models.Service, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, users UserProvider, catalog CatalogProvider) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		users:    users,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подписать пользователя на услугу
// @Description Создает подписку пользователя на услугу каталога. Пара (пользователь, услуга) уникальна.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param id path int true "ID пользователя"
// @Param request body models.DummySubscription true "Данные новой подписки"
// @Success 201 {object} map[string]any "Успешное создание подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь или услуга не найдены"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже подписан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{id}/subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
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

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	// Быстрые проверки существования ради понятных сообщений.
	if _, err := h.users.Get(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", slog.Int("user_id", userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to check user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}
	if _, err := h.catalog.Get(r.Context(), req.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("service not found", slog.Int("service_id", req.ServiceID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("service not found"))
			return
		}
		log.Error("failed to check service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	id, err := h.service.Create(r.Context(), userID, req)
	if errors.Is(err, subservice.ErrInvalidDate) {
		log.Info("invalid date in request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("dates must use format YYYY-MM-DD"))
		return
	}
	if errors.Is(err, repository.ErrDuplicate) {
		log.Info("user already subscribed",
			slog.Int("user_id", userID), slog.Int("service_id", req.ServiceID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("user is already subscribed to this service"))
		return
	}
	if errors.Is(err, repository.ErrReferenceNotFound) {
		// Пользователь или услуга исчезли между проверкой и вставкой.
		log.Info("subscription reference not found",
			slog.Int("user_id", userID), slog.Int("service_id", req.ServiceID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user or service not found"))
		return
	}
	if err != nil {
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("success to create subscription", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription_id": id,
	}))
}
