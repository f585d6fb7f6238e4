package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"minifacebook/internal/domain"
	"minifacebook/internal/pkg/jwt"
	"minifacebook/internal/repository"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(id jwt.Identity) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func newTestService(users *mockUserRepo, tokens *mockJWTService) *Service {
	svc := NewService(users, tokens)
	svc.cost = bcrypt.MinCost
	return svc
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com" && u.PasswordHash != "secret1"
	})).Return(nil)
	jwtSvc.On("GenerateToken", jwt.Identity{UserID: 42, Username: "alice", Email: "alice@example.com"}).
		Return("fake-jwt-token", nil)

	svc := newTestService(userRepo, jwtSvc)
	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "secret1",
		FullName: "Alice A",
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "Alice A", user.FullName)
	assert.Empty(t, user.PasswordHash)
	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_AlreadyExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(true, nil)

	svc := newTestService(userRepo, jwtSvc)
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrUserExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestService_Register_DuplicateOnInsert(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := newTestService(userRepo, jwtSvc)
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})

	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	user := &domain.User{ID: 7, Username: "bob", Email: "bob@example.com", PasswordHash: hashed(t, "hunter22")}
	userRepo.On("GetByLogin", mock.Anything, "bob@example.com").Return(user, nil)
	jwtSvc.On("GenerateToken", jwt.Identity{UserID: 7, Username: "bob", Email: "bob@example.com"}).
		Return("tok", nil)

	svc := newTestService(userRepo, jwtSvc)
	got, token, err := svc.Login(context.Background(), LoginRequest{Email: "bob@example.com", Password: "hunter22"})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, int64(7), got.ID)
	assert.Empty(t, got.PasswordHash)
}

func TestService_Login_FailuresAreIndistinguishable(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	user := &domain.User{ID: 7, Username: "bob", Email: "bob@example.com", PasswordHash: hashed(t, "hunter22")}
	userRepo.On("GetByLogin", mock.Anything, "bob").Return(user, nil)
	userRepo.On("GetByLogin", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTestService(userRepo, jwtSvc)

	_, _, wrongPassword := svc.Login(context.Background(), LoginRequest{Username: "bob", Password: "nope"})
	_, _, unknownUser := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "hunter22"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestService_Login_RepositoryError(t *testing.T) {
	userRepo := new(mockUserRepo)
	boom := errors.New("db down")
	userRepo.On("GetByLogin", mock.Anything, "bob").Return(nil, boom)

	svc := newTestService(userRepo, new(mockJWTService))
	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "bob", Password: "x"})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_GetCurrentUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Username: "alice", PasswordHash: "x"}, nil)
	userRepo.On("GetByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)

	svc := newTestService(userRepo, new(mockJWTService))

	u, err := svc.GetCurrentUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.GetCurrentUser(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
