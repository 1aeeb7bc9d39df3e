// Package auth содержит логику регистрации, входа и получения профиля пользователя.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/portfolio-backend/internal/models"
	"github.com/magabrotheeeer/portfolio-backend/internal/storage"
)

var (
	// ErrEmailTaken email уже используется другим пользователем.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials неверный email или пароль. Причина намеренно не уточняется.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound пользователь из токена больше не существует.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// TokenIssuer выпускает токен для идентификатора пользователя.
type TokenIssuer interface {
	GenerateToken(subject string) (string, error)
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Service отвечает за регистрацию и авторизацию пользователей.
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, tokens TokenIssuer, hasher PasswordHasher) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает пользователя и сразу выпускает для него токен.
// Занятый email проверяется раньше занятого имени.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.AuthResult, error) {
	const op = "services.auth.Register"

	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if err := s.ensureFree(ctx, email, username); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		UUID:         uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailExists):
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		case errors.Is(err, storage.ErrUsernameExists):
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.issue(op, user)
}

// Login проверяет email и пароль и выпускает токен.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issue(op, user)
}

// Profile возвращает данные пользователя без пароля и временных меток.
func (s *Service) Profile(ctx context.Context, userUID string) (*models.UserSummary, error) {
	const op = "services.auth.Profile"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *Service) ensureFree(ctx context.Context, email, username string) error {
	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, storage.ErrUserNotFound):
		return err
	}

	_, err = s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, storage.ErrUserNotFound):
		return err
	}
	return nil
}

func (s *Service) issue(op string, user *models.User) (*models.AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.AuthResult{
		User:  user.Summary(),
		Token: token,
	}, nil
}
