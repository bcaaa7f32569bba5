package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/subscription-hub/internal/models"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) SearchUsers(ctx context.Context, filter models.SearchUsersFilter) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (int, error) {
	args := m.Called(ctx, id, patch)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteUser(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUserService_Register(t *testing.T) {
	repo := new(RepoMock)
	svc := NewUserService(repo, newNoopLogger())

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		// Пароль должен быть захэширован до обращения к хранилищу.
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123"))
		return u.Email == "alice@example.com" && err == nil
	})).Return(42, nil)

	id, err := svc.Register(context.Background(), models.DummyUser{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, id)
	repo.AssertExpectations(t)
}

func TestUserService_Register_RepoError(t *testing.T) {
	repo := new(RepoMock)
	svc := NewUserService(repo, newNoopLogger())

	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("models.User")).
		Return(0, repository.ErrDuplicate)

	_, err := svc.Register(context.Background(), models.DummyUser{
		Email:     "alice@example.com",
		Password:  "password123",
		FirstName: "Alice",
		LastName:  "Smith",
	})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
	repo.AssertExpectations(t)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := new(RepoMock)
	svc := NewUserService(repo, newNoopLogger())

	newPassword := "newsecret"
	repo.On("UpdateUser", mock.Anything, 1, mock.MatchedBy(func(p models.UserPatch) bool {
		if p.PasswordHash == nil {
			return false
		}
		err := bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte(newPassword))
		return err == nil
	})).Return(1, nil)

	count, err := svc.Update(context.Background(), 1, models.UpdateUserRequest{Password: &newPassword})

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestUserService_Update_WithoutPassword(t *testing.T) {
	repo := new(RepoMock)
	svc := NewUserService(repo, newNoopLogger())

	name := "Alicia"
	repo.On("UpdateUser", mock.Anything, 1, mock.MatchedBy(func(p models.UserPatch) bool {
		return p.PasswordHash == nil && p.FirstName != nil && *p.FirstName == "Alicia"
	})).Return(1, nil)

	count, err := svc.Update(context.Background(), 1, models.UpdateUserRequest{FirstName: &name})

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestUserService_Authenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	stored := &models.User{
		ID:           1,
		Email:        "alice@example.com",
		PasswordHash: string(hashed),
		FirstName:    "Alice",
		LastName:     "Smith",
	}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMock   func(*RepoMock)
		expectedErr error
	}{
		{
			name:     "успешная аутентификация",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *RepoMock) {
				u := *stored
				m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&u, nil)
			},
		},
		{
			name:     "неверный пароль",
			email:    "alice@example.com",
			password: "wrongpass",
			setupMock: func(m *RepoMock) {
				u := *stored
				m.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&u, nil)
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:     "неизвестный email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound)
			},
			expectedErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMock(repo)
			svc := NewUserService(repo, newNoopLogger())

			user, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "alice@example.com", user.Email)
				// Хэш не должен утекать наружу.
				assert.Empty(t, user.PasswordHash)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Authenticate_StorageError(t *testing.T) {
	repo := new(RepoMock)
	svc := NewUserService(repo, newNoopLogger())

	dbErr := errors.New("connection refused")
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, dbErr)

	_, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")

	// Инфраструктурная ошибка не маскируется под неверные учетные данные.
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertExpectations(t)
}
