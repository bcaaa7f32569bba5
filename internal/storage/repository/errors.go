package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Типизированные исходы операций хранилища. Обработчики HTTP переводят их
// в статус-коды через errors.Is; сырые ошибки базы наружу не выходят.
var (
	// ErrNotFound — запрошенная строка или пара отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate — нарушен уникальный индекс (email, название услуги,
	// пара пользователь–услуга).
	ErrDuplicate = errors.New("duplicate")
	// ErrReferenceNotFound — внешний ключ указывает на несуществующую строку.
	ErrReferenceNotFound = errors.New("reference not found")
)

// mapError переводит ошибку базы данных в типизированную доменную ошибку,
// сохраняя исходную ошибку в цепочке для диагностики.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w (%s): %v", ErrDuplicate, pgErr.ConstraintName, err)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w (%s): %v", ErrReferenceNotFound, pgErr.ConstraintName, err)
		}
	}

	return err
}

// IsConstraintError сообщает, является ли ошибка одним из ожидаемых
// нарушений ограничений, а не неожиданным сбоем хранилища.
func IsConstraintError(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrReferenceNotFound)
}
