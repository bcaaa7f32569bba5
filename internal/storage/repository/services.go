package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// ListServices возвращает все услуги каталога в порядке их ID.
func (s *Storage) ListServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.ListServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description
			  FROM services
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Service
	for rows.Next() {
		var item models.Service
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			item.Description = &description.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetService возвращает услугу каталога по её ID.
func (s *Storage) GetService(ctx context.Context, id int) (*models.Service, error) {
	const op = "storage.GetService"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description
			  FROM services
			  WHERE id = $1`
	item := &models.Service{}
	var description sql.NullString
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.Name, &description); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	if description.Valid {
		item.Description = &description.String
	}
	return item, nil
}

// CreateService добавляет услугу в каталог и возвращает её ID.
// Основной API каталог не изменяет, метод используется сидированием.
// При конфликте названия возвращает ErrDuplicate.
func (s *Storage) CreateService(ctx context.Context, service models.Service) (int, error) {
	const op = "storage.CreateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO services (name, description)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, service.Name, service.Description).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// CountServices возвращает количество услуг в каталоге.
func (s *Storage) CountServices(ctx context.Context) (int, error) {
	const op = "storage.CountServices"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
