package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Пароль должен приходить сюда уже в виде хэша. При конфликте email
// возвращает ErrDuplicate, частичной вставки не происходит.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, password_hash, first_name, last_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return newID, nil
}

// GetUser возвращает публичные поля пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, first_name, last_name
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя вместе с хэшем пароля.
// Единственный метод чтения, отдающий password_hash, —
// зарезервирован за аутентификацией.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, first_name, last_name
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке их ID.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, first_name, last_name
			  FROM users
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchUsers ищет пользователей по подстрокам заданных полей фильтра.
// Каждое заданное поле сопоставляется как LIKE '%term%' с учётом регистра,
// незаданные поля выборку не ограничивают. Пустой фильтр отклоняется
// вызывающим слоем до обращения сюда.
func (s *Storage) SearchUsers(ctx context.Context, filter models.SearchUsersFilter) ([]*models.User, error) {
	const op = "storage.SearchUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, first_name, last_name FROM users WHERE 1=1`
	var args []any
	if filter.Email != nil {
		args = append(args, "%"+*filter.Email+"%")
		query += fmt.Sprintf(" AND email LIKE $%d", len(args))
	}
	if filter.FirstName != nil {
		args = append(args, "%"+*filter.FirstName+"%")
		query += fmt.Sprintf(" AND first_name LIKE $%d", len(args))
	}
	if filter.LastName != nil {
		args = append(args, "%"+*filter.LastName+"%")
		query += fmt.Sprintf(" AND last_name LIKE $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser выполняет частичное обновление пользователя одним атомарным
// запросом: в SET попадают только заданные поля патча. Возвращает количество
// изменённых строк; конфликт email отражается как ErrDuplicate.
func (s *Storage) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var sets []string
	var args []any
	if patch.Email != nil {
		args = append(args, *patch.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if patch.PasswordHash != nil {
		args = append(args, *patch.PasswordHash)
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if patch.FirstName != nil {
		args = append(args, *patch.FirstName)
		sets = append(sets, fmt.Sprintf("first_name = $%d", len(args)))
	}
	if patch.LastName != nil {
		args = append(args, *patch.LastName)
		sets = append(sets, fmt.Sprintf("last_name = $%d", len(args)))
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteUser удаляет пользователя по ID и возвращает количество удалённых
// строк. Зависимые подписки удаляются каскадом на уровне базы.
func (s *Storage) DeleteUser(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountUsers возвращает количество пользователей. Используется сидированием
// для проверки, что таблица пуста.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
