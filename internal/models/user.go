// Package models содержит доменные структуры системы: пользователей,
// услуги каталога и подписки, связывающие их. Помимо основных моделей
// здесь определены структуры для приёма данных из JSON-запросов
// («Dummy»-структуры) и структуры частичного обновления.
package models

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется в JSON-ответы: единственный
// читающий его путь — аутентификация через GetUserByEmail.
type User struct {
	ID           int    `json:"id"`         // Уникальный числовой идентификатор
	Email        string `json:"email"`      // Электронная почта (уникальная)
	PasswordHash string `json:"-"`          // bcrypt-хэш пароля
	FirstName    string `json:"first_name"` // Имя
	LastName     string `json:"last_name"`  // Фамилия
}

// DummyUser используется для приёма данных регистрации из JSON-запроса.
type DummyUser struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// UpdateUserRequest описывает частичное обновление пользователя.
// Каждое поле опционально: nil означает «не менять».
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// IsEmpty сообщает, что ни одно поле обновления не задано.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Email == nil && r.Password == nil && r.FirstName == nil && r.LastName == nil
}

// UserPatch — набор изменяемых колонок для слоя хранилища.
// Пароль сюда попадает уже в виде хэша.
type UserPatch struct {
	Email        *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
}

// SearchUsersFilter описывает параметры поиска пользователей.
// Каждое заданное поле сопоставляется как подстрока (LIKE %term%),
// незаданные поля не ограничивают выборку.
type SearchUsersFilter struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// IsEmpty сообщает, что ни один параметр поиска не задан.
func (f SearchUsersFilter) IsEmpty() bool {
	return f.Email == nil && f.FirstName == nil && f.LastName == nil
}
