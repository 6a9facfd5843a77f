package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 7
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.User), args.Error(1)
}

const secret = "secreto-de-prueba"

func newUseCase(repo *mockUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("rol por defecto recepcion y email normalizado", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "ana@gym.test").Return(nil, nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil).Once()

		out, err := newUseCase(repo).RegisterUser(ctx, dto.RegisterRequest{
			Name: "Ana", Email: " Ana@Gym.test ", Password: "clave-segura",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), out.ID)
		assert.Equal(t, entity.RoleRecepcion, out.Role)
		assert.Equal(t, "ana@gym.test", out.Email)

		created := repo.Calls[1].Arguments.Get(1).(*entity.User)
		assert.NotEqual(t, "clave-segura", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("clave-segura")))
		repo.AssertExpectations(t)
	})

	t.Run("email duplicado", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "ana@gym.test").Return(&entity.User{ID: 1}, nil).Once()

		_, err := newUseCase(repo).RegisterUser(ctx, dto.RegisterRequest{Email: "ana@gym.test", Password: "clave-segura"})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rol inválido", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", ctx, "x@gym.test").Return(nil, nil).Once()

		_, err := newUseCase(repo).RegisterUser(ctx, dto.RegisterRequest{Email: "x@gym.test", Password: "clave-segura", Role: "root"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	active := &entity.User{ID: 3, Email: "admin@gym.test", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: entity.UserStatusActive}
	inactive := &entity.User{ID: 4, Email: "old@gym.test", PasswordHash: string(hash), Role: entity.RoleRecepcion, Status: entity.UserStatusInactive}

	repo := new(mockUserRepo)
	repo.On("GetByEmail", ctx, "admin@gym.test").Return(active, nil)
	repo.On("GetByEmail", ctx, "old@gym.test").Return(inactive, nil)
	repo.On("GetByEmail", ctx, "nadie@gym.test").Return(nil, nil)
	uc := newUseCase(repo)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@gym.test", Password: "clave-segura"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), userID)
	assert.Equal(t, entity.RoleAdmin, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@gym.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "old@gym.test", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@gym.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
