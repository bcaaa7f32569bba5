// Package seed наполняет пустую базу данных демонстрационными данными.
// Повторный запуск не создает дубликатов: каждая таблица заполняется
// только если она пуста.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-hub/internal/lib/password"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

type seedUser struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type seedSubscription struct {
	UserEmail   string
	ServiceName string
	Active      bool
	StartDate   time.Time
	EndDate     *time.Time
}

// Run вставляет демонстрационных пользователей, услуги и подписки.
func Run(ctx context.Context, storage *repository.Storage, log *slog.Logger) error {
	const op = "seed.Run"

	if err := seedUsers(ctx, storage, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedServices(ctx, storage, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := seedSubscriptions(ctx, storage, log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func seedUsers(ctx context.Context, storage *repository.Storage, log *slog.Logger) error {
	count, err := storage.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []seedUser{
		{Email: "alice@example.com", FirstName: "Alice", LastName: "Smith", Password: "password123"},
		{Email: "bob@example.com", FirstName: "Bob", LastName: "Johnson", Password: "securepass"},
		{Email: "charlie@example.com", FirstName: "Charlie", LastName: "Brown", Password: "qwerty"},
	}
	for _, u := range users {
		hash, err := password.Hash(u.Password)
		if err != nil {
			return err
		}
		if _, err := storage.CreateUser(ctx, models.User{
			Email:        u.Email,
			PasswordHash: hash,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
		}); err != nil {
			return err
		}
	}
	log.Info("seeded demo users", slog.Int("count", len(users)))
	return nil
}

func seedServices(ctx context.Context, storage *repository.Storage, log *slog.Logger) error {
	count, err := storage.CountServices(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	descriptions := []string{
		"24/7 priority support for critical issues.",
		"Access to in-depth data analysis tools.",
		"1TB secure cloud storage with advanced features.",
	}
	services := []models.Service{
		{Name: "Premium Support", Description: &descriptions[0]},
		{Name: "Advanced Analytics", Description: &descriptions[1]},
		{Name: "Cloud Storage Pro", Description: &descriptions[2]},
	}
	for _, s := range services {
		if _, err := storage.CreateService(ctx, s); err != nil {
			return err
		}
	}
	log.Info("seeded demo services", slog.Int("count", len(services)))
	return nil
}

func seedSubscriptions(ctx context.Context, storage *repository.Storage, log *slog.Logger) error {
	count, err := storage.CountSubscriptions(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	userIDs := make(map[string]int)
	users, err := storage.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		userIDs[u.Email] = u.ID
	}

	serviceIDs := make(map[string]int)
	services, err := storage.ListServices(ctx)
	if err != nil {
		return err
	}
	for _, s := range services {
		serviceIDs[s.Name] = s.ID
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	nextMonth := today.AddDate(0, 0, 30)
	nextYear := today.AddDate(0, 0, 365)
	monthAgo := today.AddDate(0, 0, -30)
	twoMonthsAgo := today.AddDate(0, 0, -60)

	subscriptions := []seedSubscription{
		{UserEmail: "alice@example.com", ServiceName: "Premium Support", Active: true, StartDate: today, EndDate: &nextYear},
		{UserEmail: "alice@example.com", ServiceName: "Cloud Storage Pro", Active: true, StartDate: today},
		{UserEmail: "bob@example.com", ServiceName: "Advanced Analytics", Active: true, StartDate: today, EndDate: &nextMonth},
		{UserEmail: "charlie@example.com", ServiceName: "Premium Support", Active: false, StartDate: twoMonthsAgo, EndDate: &monthAgo},
	}
	for _, sub := range subscriptions {
		userID, ok := userIDs[sub.UserEmail]
		if !ok {
			continue
		}
		serviceID, ok := serviceIDs[sub.ServiceName]
		if !ok {
			continue
		}
		if _, err := storage.CreateSubscription(ctx, models.Subscription{
			UserID:    userID,
			ServiceID: serviceID,
			Active:    sub.Active,
			StartDate: sub.StartDate,
			EndDate:   sub.EndDate,
		}); err != nil {
			return err
		}
	}
	log.Info("seeded demo subscriptions", slog.Int("count", len(subscriptions)))
	return nil
}
