// Package services содержит бизнес-логику жизненного цикла подписок,
// включая кеширование чтений по паре пользователь–услуга.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// ErrInvalidDate возвращается, когда дата в запросе не соответствует
// формату 2006-01-02.
var ErrInvalidDate = errors.New("invalid date, expected format YYYY-MM-DD")

// dateLayout — формат дат подписки в запросах и ответах.
const dateLayout = "2006-01-02"

// subscriptionTTL — время жизни кеша подписки.
const subscriptionTTL = time.Hour

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// GetSubscription возвращает подписку пары с данными услуги.
	GetSubscription(ctx context.Context, userID, serviceID int) (*models.SubscriptionInfo, error)
	// ListSubscriptions возвращает все подписки пользователя.
	ListSubscriptions(ctx context.Context, userID int) ([]*models.SubscriptionInfo, error)
	// UpdateSubscription применяет патч и возвращает количество изменённых строк.
	UpdateSubscription(ctx context.Context, userID, serviceID int, patch models.SubscriptionPatch) (int, error)
	// DeleteSubscription удаляет подписку пары.
	DeleteSubscription(ctx context.Context, userID, serviceID int) (int, error)
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

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает подписку пользователя на услугу и возвращает её ID.
// StartDate по умолчанию — сегодняшняя дата, Active по умолчанию — true.
// Гонку двух одновременных созданий одной пары разрешает уникальный
// индекс базы: проигравший получает ErrDuplicate.
func (s *SubscriptionService) Create(ctx context.Context, userID int, req models.DummySubscription) (int, error) {
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		var err error
		startDate, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		endDate = &parsed
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	sub := models.Subscription{
		UserID:    userID,
		ServiceID: req.ServiceID,
		Active:    active,
		StartDate: startDate,
		EndDate:   endDate,
	}
	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new subscription",
		slog.Int("id", id), slog.Int("user_id", userID), slog.Int("service_id", req.ServiceID))
	return id, nil
}

// Get возвращает подписку пары, используя кеш или хранилище.
func (s *SubscriptionService) Get(ctx context.Context, userID, serviceID int) (*models.SubscriptionInfo, error) {
	cacheKey := subscriptionKey(userID, serviceID)

	var result *models.SubscriptionInfo
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read subscription from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetSubscription(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, subscriptionTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все подписки пользователя с данными услуг.
func (s *SubscriptionService) List(ctx context.Context, userID int) ([]*models.SubscriptionInfo, error) {
	return s.repo.ListSubscriptions(ctx, userID)
}

// Update применяет частичное обновление подписки и инвалидирует кеш пары.
func (s *SubscriptionService) Update(ctx context.Context, userID, serviceID int, req models.UpdateSubscriptionRequest) (int, error) {
	patch := models.SubscriptionPatch{
		Active: req.Active,
	}
	if req.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		patch.EndDate = &parsed
	}

	count, err := s.repo.UpdateSubscription(ctx, userID, serviceID, patch)
	if err != nil {
		return 0, err
	}

	cacheKey := subscriptionKey(userID, serviceID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("updated subscription",
		slog.Int("user_id", userID), slog.Int("service_id", serviceID), slog.Int("rows", count))
	return count, nil
}

// Remove удаляет подписку пары и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, userID, serviceID int) (int, error) {
	cacheKey := subscriptionKey(userID, serviceID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteSubscription(ctx, userID, serviceID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func subscriptionKey(userID, serviceID int) string {
	return fmt.Sprintf("subscription:%d:%d", userID, serviceID)
}
