package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-hub/internal/cache"
	"github.com/magabrotheeeer/subscription-hub/internal/config"
	"github.com/magabrotheeeer/subscription-hub/internal/migrations"
	"github.com/magabrotheeeer/subscription-hub/internal/seed"
	catalogservice "github.com/magabrotheeeer/subscription-hub/internal/services/catalog"
	subservice "github.com/magabrotheeeer/subscription-hub/internal/services/subscription"
	userservice "github.com/magabrotheeeer/subscription-hub/internal/services/user"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключается к базе данных, применяет миграции,
// наполняет пустую базу демонстрационными данными и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = seed.Run(ctx, db, logger); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	users := userservice.NewUserService(db, logger)
	catalog := catalogservice.NewCatalogService(db, cacheRedis, logger)
	subscriptions := subservice.NewSubscriptionService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, users, catalog, subscriptions)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
