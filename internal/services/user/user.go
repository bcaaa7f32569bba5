// Package services содержит бизнес-логику для управления пользователями
// и проверки их учётных данных.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/subscription-hub/internal/lib/password"
	"github.com/magabrotheeeer/subscription-hub/internal/models"
	"github.com/magabrotheeeer/subscription-hub/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неудачной проверке учётных данных.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
	// GetUser возвращает публичные поля пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// GetUserByEmail возвращает пользователя с хэшем пароля.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// SearchUsers ищет пользователей по подстрокам полей фильтра.
	SearchUsers(ctx context.Context, filter models.SearchUsersFilter) ([]*models.User, error)
	// UpdateUser применяет патч и возвращает количество изменённых строк.
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (int, error)
	// DeleteUser удаляет пользователя, подписки уходят каскадом.
	DeleteUser(ctx context.Context, id int) (int, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Register создает нового пользователя, хэшируя пароль перед сохранением.
// Открытый пароль дальше этого метода не уходит.
func (s *UserService) Register(ctx context.Context, req models.DummyUser) (int, error) {
	hashed, err := password.Hash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new user", slog.Int("id", id))
	return id, nil
}

// Get возвращает публичные поля пользователя по ID.
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Search ищет пользователей по подстрокам заданных полей.
func (s *UserService) Search(ctx context.Context, filter models.SearchUsersFilter) ([]*models.User, error) {
	return s.repo.SearchUsers(ctx, filter)
}

// Update применяет частичное обновление пользователя. Новый пароль,
// если он задан, заменяется хэшем до обращения к хранилищу.
func (s *UserService) Update(ctx context.Context, id int, req models.UpdateUserRequest) (int, error) {
	patch := models.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Password != nil {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return 0, err
		}
		patch.PasswordHash = &hashed
	}

	count, err := s.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated user", slog.Int("id", id), slog.Int("rows", count))
	return count, nil
}

// Remove удаляет пользователя вместе с его подписками.
func (s *UserService) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("deleted user", slog.Int("id", id), slog.Int("rows", count))
	return count, nil
}

// Authenticate проверяет пару email/пароль и возвращает публичные поля
// пользователя. Любая причина отказа отражается как ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, rawPassword string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	user.PasswordHash = ""
	return user, nil
}
