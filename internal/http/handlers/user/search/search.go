// Package search реализует HTTP-обработчик поиска пользователей
// по подстрокам email, имени и фамилии.
//
// Запрос без единого параметра поиска отклоняется со статусом 400
// до обращения к бизнес-логике.
package search

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

// Handler обрабатывает запросы на поиск пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска пользователей.
type Service interface {
	Search(ctx context.Context, filter models.SearchUsersFilter) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск пользователей
// @Description Ищет пользователей по подстрокам email, имени и фамилии с учётом регистра.
// @Tags Users
// @Produce  json
// @Param email query string false "Подстрока email"
// @Param first_name query string false "Подстрока имени"
// @Param last_name query string false "Подстрока фамилии"
// @Success 200 {object} map[string]any "Найденные пользователи"
// @Failure 400 {object} response.ErrorResponse "Не задан ни один параметр"
// @Failure 404 {object} response.ErrorResponse "Никто не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var filter models.SearchUsersFilter
	if v := r.URL.Query().Get("email"); v != "" {
		filter.Email = &v
	}
	if v := r.URL.Query().Get("first_name"); v != "" {
		filter.FirstName = &v
	}
	if v := r.URL.Query().Get("last_name"); v != "" {
		filter.LastName = &v
	}

	if filter.IsEmpty() {
		log.Info("search without parameters")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("provide at least one search parameter: email, first_name or last_name"))
		return
	}

	users, err := h.service.Search(r.Context(), filter)
	if err != nil {
		log.Error("failed to search users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search users"))
		return
	}
	if len(users) == 0 {
		log.Info("no users found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no users found matching the criteria"))
		return
	}

	log.Info("success to search users", slog.Int("count", len(users)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": users,
	}))
}
