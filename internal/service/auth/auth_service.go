package auth

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase is the pluggable token-issuer capability the HTTP layer
// depends on.
type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

type TokenCache interface {
	GetTokenUser(ctx context.Context, token string) (*domain.User, error)
	SetTokenUser(ctx context.Context, token string, user *domain.User) error
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

type AuthService struct {
	users    repository.UserRepository
	cache    TokenCache
	newToken func() string
}

type AuthServiceOption func(*AuthService)

// WithTokenGenerator replaces the UUID token source, mainly for tests.
func WithTokenGenerator(gen func() string) AuthServiceOption {
	return func(s *AuthService) {
		s.newToken = gen
	}
}

func NewAuthService(users repository.UserRepository, cache TokenCache, opts ...AuthServiceOption) *AuthService {
	service := &AuthService{
		users:    users,
		cache:    cache,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)

	verrs := domain.ValidationErrors{}
	if username == "" {
		verrs["username"] = "this field is required"
	}
	if msg := checkPassword(input.Password); msg != "" {
		verrs["password"] = msg
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.ValidationErrors{"username": "a user with that username already exists"}
		}
		return nil, err
	}
	return user, nil
}

// Login returns the user's stable token; repeated logins get the same value.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.users.GetOrCreateToken(ctx, user.ID, s.newToken())
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		_ = s.cache.SetTokenUser(ctx, token, user)
	}
	return token, nil
}

func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	if s.cache != nil {
		if user, err := s.cache.GetTokenUser(ctx, token); err == nil && user != nil {
			return user, nil
		}
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTokenUser(ctx, token, user)
	}
	return user, nil
}

func checkPassword(password string) string {
	if password == "" {
		return "this field is required"
	}
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "password must not be entirely numeric"
	}
	return ""
}

var _ AuthUseCase = (*AuthService)(nil)
