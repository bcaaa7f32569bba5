package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// dateLayout — формат дат подписки в JSON-ответах.
const dateLayout = "2006-01-02"

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Уникальность пары (user_id, service_id) и существование обеих сторон
// обеспечиваются ограничениями базы: при нарушении возвращаются
// ErrDuplicate либо ErrReferenceNotFound, строка не создаётся.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_services (user_id, service_id, active, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var endDate sql.NullTime
	if sub.EndDate != nil {
		endDate = sql.NullTime{Time: *sub.EndDate, Valid: true}
	}
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.ServiceID, sub.Active, sub.StartDate, endDate).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// GetSubscription возвращает подписку пары (user_id, service_id),
// дополненную названием и описанием услуги.
func (s *Storage) GetSubscription(ctx context.Context, userID, serviceID int) (*models.SubscriptionInfo, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT us.id, s.id, s.name, s.description, us.active, us.start_date, us.end_date
			  FROM user_services us
			  JOIN services s ON us.service_id = s.id
			  WHERE us.user_id = $1 AND us.service_id = $2`
	row := s.DB.QueryRowContext(ctx, query, userID, serviceID)

	item, err := scanSubscriptionInfo(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return item, nil
}

// ListSubscriptions возвращает все подписки пользователя с данными услуг.
func (s *Storage) ListSubscriptions(ctx context.Context, userID int) ([]*models.SubscriptionInfo, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT us.id, s.id, s.name, s.description, us.active, us.start_date, us.end_date
			  FROM user_services us
			  JOIN services s ON us.service_id = s.id
			  WHERE us.user_id = $1
			  ORDER BY us.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionInfo
	for rows.Next() {
		item, err := scanSubscriptionInfo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription выполняет частичное обновление подписки одним атомарным
// запросом: меняются только заданные поля патча (active, end_date).
// Возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, userID, serviceID int, patch models.SubscriptionPatch) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sets []string
	var args []any
	if patch.Active != nil {
		args = append(args, *patch.Active)
		sets = append(sets, fmt.Sprintf("active = $%d", len(args)))
	}
	if patch.EndDate != nil {
		args = append(args, *patch.EndDate)
		sets = append(sets, fmt.Sprintf("end_date = $%d", len(args)))
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, userID, serviceID)
	query := fmt.Sprintf("UPDATE user_services SET %s WHERE user_id = $%d AND service_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteSubscription удаляет подписку пары (user_id, service_id)
// и возвращает количество удалённых строк.
func (s *Storage) DeleteSubscription(ctx context.Context, userID, serviceID int) (int, error) {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_services WHERE user_id = $1 AND service_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userID, serviceID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountSubscriptions возвращает количество подписок.
func (s *Storage) CountSubscriptions(ctx context.Context) (int, error) {
	const op = "storage.CountSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_services`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// scanSubscriptionInfo читает строку соединения user_services и services,
// приводя даты к строкам формата 2006-01-02.
func scanSubscriptionInfo(scan func(dest ...any) error) (*models.SubscriptionInfo, error) {
	var item models.SubscriptionInfo
	var description sql.NullString
	var startDate time.Time
	var endDate sql.NullTime

	if err := scan(&item.SubscriptionID, &item.ServiceID, &item.ServiceName, &description,
		&item.Active, &startDate, &endDate); err != nil {
		return nil, err
	}

	if description.Valid {
		item.ServiceDescription = &description.String
	}
	item.StartDate = startDate.Format(dateLayout)
	if endDate.Valid {
		formatted := endDate.Time.Format(dateLayout)
		item.EndDate = &formatted
	}
	return &item, nil
}
