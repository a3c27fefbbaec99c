package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
	"github.com/guipratiko/onlyhelper-back/internal/core/mocks"
)

type stubTokenIssuer struct{}

func (stubTokenIssuer) Generate(userID uuid.UUID, role domain.Role) (string, error) {
	return "token-" + userID.String(), nil
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers attendant and issues token", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrUserNotFound)
		users.On("Insert", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		result, err := svc.Register(ctx, domain.UserRegistrationParams{
			FullName: "Ana Souza",
			Email:    "ana@example.com",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAttendant, result.User.Role)
		assert.NotEmpty(t, result.Token)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "ana@example.com").Return(&domain.User{ID: uuid.New()}, nil)

		_, err := svc.Register(ctx, domain.UserRegistrationParams{
			FullName: "Ana Souza",
			Email:    "ana@example.com",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("invalid params rejected", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "not-an-email").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Register(ctx, domain.UserRegistrationParams{
			FullName: "Ana Souza",
			Email:    "not-an-email",
			Password: "s3cret-pass",
		})

		var validationErrs *apperrors.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	hashed, err := domain.HashPassword("s3cret-pass")
	require.NoError(t, err)
	account := &domain.User{
		ID:             uuid.New(),
		Email:          "ana@example.com",
		HashedPassword: hashed,
		Role:           domain.RoleAttendant,
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "ana@example.com").Return(account, nil)

		result, err := svc.Login(ctx, "ana@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, account.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "ana@example.com").Return(account, nil)

		_, err := svc.Login(ctx, "ana@example.com", "wrong")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown account reads as invalid credentials", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := NewAuthService(users, stubTokenIssuer{}, testLogger())

		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "whatever")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
