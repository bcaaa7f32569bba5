// Package services содержит бизнес-логику каталога услуг, включая
// кеширование списка: каталог читается часто и меняется только сидированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// catalogTTL — время жизни кеша каталога.
const catalogTTL = time.Hour

// ServiceRepository определяет методы для работы с каталогом услуг в хранилище.
type ServiceRepository interface {
	// ListServices возвращает все услуги каталога.
	ListServices(ctx context.Context) ([]*models.Service, error)
	// GetService возвращает услугу по ID.
	GetService(ctx context.Context, id int) (*models.Service, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога услуг.
type CatalogService struct {
	repo  ServiceRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ServiceRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает все услуги каталога, используя кеш или хранилище.
func (s *CatalogService) List(ctx context.Context) ([]*models.Service, error) {
	const cacheKey = "services:all"

	var result []*models.Service
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read catalog from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, catalogTTL); err != nil {
		s.log.Warn("failed to cache catalog", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Get возвращает услугу каталога по ID, используя кеш или хранилище.
func (s *CatalogService) Get(ctx context.Context, id int) (*models.Service, error) {
	cacheKey := fmt.Sprintf("service:%d", id)

	var result *models.Service
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read service from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, catalogTTL); err != nil {
		s.log.Warn("failed to cache service", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}
