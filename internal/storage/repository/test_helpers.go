package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// UniqueEmail возвращает уникальный email для тестового пользователя
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String())
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, email, passwordHash, firstName, lastName string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		email, passwordHash, firstName, lastName).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateService создает тестовую услугу каталога и возвращает её ID
func (f *TestDataFactory) CreateService(t *testing.T, name, description string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO services (name, description)
		VALUES ($1, $2) RETURNING id`,
		name, description).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её ID
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID, serviceID int, active bool,
	startDate time.Time, endDate *time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO user_services (user_id, service_id, active, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, serviceID, active, startDate, endDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, id int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE id = $1", id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyUserDeleted проверяет удаление пользователя из БД
func (v *TestVerification) VerifyUserDeleted(t *testing.T, id int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE id = $1", id).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// VerifySubscriptionCount проверяет количество подписок пользователя в БД
func (v *TestVerification) VerifySubscriptionCount(t *testing.T, userID, expected int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM user_services WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}

// VerifySubscriptionDeleted проверяет удаление подписки из БД
func (v *TestVerification) VerifySubscriptionDeleted(t *testing.T, subscriptionID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM user_services WHERE id = $1", subscriptionID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
