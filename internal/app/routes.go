// Package app собирает приложение: хранилище, кеш, сервисы и маршруты.
package app

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-hub/internal/http/handlers/health"
	servicelist "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/service/list"
	serviceread "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/service/read"
	subscriptioncreate "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/subscription/list"
	subscriptionread "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/subscription/read"
	subscriptionremove "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/subscription/remove"
	subscriptionupdate "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/subscription/update"
	usercreate "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/create"
	userlist "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/list"
	userlogin "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/login"
	userread "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/remove"
	usersearch "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/search"
	userupdate "github.com/magabrotheeeer/subscription-hub/internal/http/handlers/user/update"

	catalogservice "github.com/magabrotheeeer/subscription-hub/internal/services/catalog"
	subservice "github.com/magabrotheeeer/subscription-hub/internal/services/subscription"
	userservice "github.com/magabrotheeeer/subscription-hub/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	users *userservice.UserService,
	catalog *catalogservice.CatalogService,
	subscriptions *subservice.SubscriptionService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", userlogin.New(logger, users).ServeHTTP)

		r.Post("/users", usercreate.New(logger, users).ServeHTTP)
		r.Get("/users", userlist.New(logger, users).ServeHTTP)
		r.Get("/users/search", usersearch.New(logger, users).ServeHTTP)
		r.Get("/users/{id}", userread.New(logger, users).ServeHTTP)
		r.Put("/users/{id}", userupdate.New(logger, users).ServeHTTP)
		r.Delete("/users/{id}", userremove.New(logger, users).ServeHTTP)

		r.Get("/services", servicelist.New(logger, catalog).ServeHTTP)
		r.Get("/services/{id}", serviceread.New(logger, catalog).ServeHTTP)

		r.Post("/users/{id}/subscriptions", subscriptioncreate.New(logger, subscriptions, users, catalog).ServeHTTP)
		r.Get("/users/{id}/subscriptions", subscriptionlist.New(logger, subscriptions).ServeHTTP)
		r.Get("/users/{id}/subscriptions/{service_id}", subscriptionread.New(logger, subscriptions).ServeHTTP)
		r.Put("/users/{id}/subscriptions/{service_id}", subscriptionupdate.New(logger, subscriptions).ServeHTTP)
		r.Delete("/users/{id}/subscriptions/{service_id}", subscriptionremove.New(logger, subscriptions).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
