package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/littlelemon/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreateToken(ctx context.Context, userID int64, candidate string) (string, error) {
	args := m.Called(ctx, userID, candidate)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) GetTokenUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTokenCache) SetTokenUser(ctx context.Context, token string, user *domain.User) error {
	args := m.Called(ctx, token, user)
	return args.Error(0)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "admin",
		Password: "lemon@123",
		Email:    "admin@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("lemon@123")))
	repo.AssertExpectations(t)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	for _, password := range []string{"", "short", "12345678"} {
		_, err := svc.Register(context.Background(), RegisterInput{Username: "admin", Password: password})

		var verrs domain.ValidationErrors
		assert.ErrorAs(t, err, &verrs, password)
		assert.Contains(t, verrs, "password")
	}
	repo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "admin", Password: "lemon@123"})

	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "username")
}

func TestAuthService_Login_StableToken(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil, WithTokenGenerator(func() string { return "candidate" }))

	user := &domain.User{ID: 1, Username: "admin", PasswordHash: hashOf(t, "lemon@123")}
	repo.On("GetByUsername", mock.Anything, "admin").Return(user, nil)
	// The store already holds a token; the candidate must be discarded.
	repo.On("GetOrCreateToken", mock.Anything, int64(1), "candidate").Return("stable-token", nil)

	first, err := svc.Login(context.Background(), "admin", "lemon@123")
	assert.NoError(t, err)

	second, err := svc.Login(context.Background(), "admin", "lemon@123")
	assert.NoError(t, err)

	assert.Equal(t, "stable-token", first)
	assert.Equal(t, first, second)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	user := &domain.User{ID: 1, Username: "admin", PasswordHash: hashOf(t, "lemon@123")}
	repo.On("GetByUsername", mock.Anything, "admin").Return(user, nil)

	_, err := svc.Login(context.Background(), "admin", "lemon123")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "GetOrCreateToken")
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	repo.On("GetByUsername", mock.Anything, "admn").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), "admn", "lemon@123")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken_CacheHit(t *testing.T) {
	repo := &MockUserRepository{}
	tc := &MockTokenCache{}
	svc := NewAuthService(repo, tc)

	cached := &domain.User{ID: 1, Username: "admin"}
	tc.On("GetTokenUser", mock.Anything, "tok").Return(cached, nil)

	user, err := svc.VerifyToken(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Equal(t, cached, user)
	repo.AssertNotCalled(t, "GetByToken")
}

func TestAuthService_VerifyToken_CacheMissFallsBack(t *testing.T) {
	repo := &MockUserRepository{}
	tc := &MockTokenCache{}
	svc := NewAuthService(repo, tc)

	stored := &domain.User{ID: 1, Username: "admin"}
	tc.On("GetTokenUser", mock.Anything, "tok").Return(nil, nil)
	repo.On("GetByToken", mock.Anything, "tok").Return(stored, nil)
	tc.On("SetTokenUser", mock.Anything, "tok", stored).Return(nil)

	user, err := svc.VerifyToken(context.Background(), "tok")

	assert.NoError(t, err)
	assert.Equal(t, stored, user)
	tc.AssertExpectations(t)
}

func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	repo := &MockUserRepository{}
	svc := NewAuthService(repo, nil)

	repo.On("GetByToken", mock.Anything, "bogus").Return(nil, domain.ErrInvalidToken)

	_, err := svc.VerifyToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.VerifyToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
