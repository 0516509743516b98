package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
)

func newAuthService(users *MockUserStore, invites *MockInviteStore, publisher *MockEventPublisher) *AuthService {
	return NewAuthService(users, invites, NewPasswordService(), NewJWTService("test-secret", time.Hour), publisher, testLogger())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates pending student by default", func(t *testing.T) {
		users := new(MockUserStore)
		invites := new(MockInviteStore)
		publisher := new(MockEventPublisher)
		svc := newAuthService(users, invites, publisher)

		users.On("EmailExists", mock.Anything, "ravi@example.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
		publisher.On("PublishUserRegistered", mock.Anything).Return()

		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:     "Ravi",
			Email:    "  Ravi@Example.com ",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "ravi@example.com", resp.User.Email)
		assert.Equal(t, models.RoleStudent, resp.User.Role)
		assert.Equal(t, models.StatusPending, resp.User.Status)
		assert.Empty(t, resp.User.Password)
		assert.NotEmpty(t, resp.Token)
		users.AssertExpectations(t)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc := newAuthService(new(MockUserStore), new(MockInviteStore), new(MockEventPublisher))

		cases := []models.RegisterRequest{
			{Email: "a@b.com", Password: "password123"},
			{Name: "Ravi", Password: "password123"},
			{Name: "Ravi", Email: "a@b.com"},
			{Name: "Ravi", Email: "not-an-email", Password: "password123"},
		}
		for _, req := range cases {
			_, err := svc.Register(context.Background(), &req)
			assert.True(t, IsValidationError(err), "request %+v should fail validation", req)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := newAuthService(new(MockUserStore), new(MockInviteStore), new(MockEventPublisher))

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: "password123",
			Role:     "superuser",
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users := new(MockUserStore)
		svc := newAuthService(users, new(MockInviteStore), new(MockEventPublisher))

		users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:     "Ravi",
			Email:    "taken@example.com",
			Password: "password123",
		})
		assert.True(t, IsConflictError(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invite token overrides requested tenant", func(t *testing.T) {
		users := new(MockUserStore)
		invites := new(MockInviteStore)
		publisher := new(MockEventPublisher)
		svc := newAuthService(users, invites, publisher)

		inviteTenant := uuid.New()
		invites.On("Consume", mock.Anything, "tok-123").Return(&models.InviteToken{TenantID: inviteTenant}, nil)
		users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
		publisher.On("PublishUserRegistered", mock.Anything).Return()

		resp, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:        "Ravi",
			Email:       "ravi@example.com",
			Password:    "password123",
			TenantID:    uuid.New().String(),
			InviteToken: "tok-123",
		})
		require.NoError(t, err)
		assert.Equal(t, inviteTenant, resp.User.TenantID)
	})

	t.Run("spent invite token fails validation", func(t *testing.T) {
		users := new(MockUserStore)
		invites := new(MockInviteStore)
		svc := newAuthService(users, invites, new(MockEventPublisher))

		users.On("EmailExists", mock.Anything, "ravi@example.com").Return(false, nil)
		invites.On("Consume", mock.Anything, "spent").Return(nil, repository.ErrNotFound)

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:        "Ravi",
			Email:       "ravi@example.com",
			Password:    "password123",
			InviteToken: "spent",
		})
		assert.True(t, IsValidationError(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejected registration does not consume the invite", func(t *testing.T) {
		users := new(MockUserStore)
		invites := new(MockInviteStore)
		svc := newAuthService(users, invites, new(MockEventPublisher))

		users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:        "Ravi",
			Email:       "taken@example.com",
			Password:    "password123",
			InviteToken: "tok-123",
		})
		assert.True(t, IsConflictError(err))
		invites.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	})

	t.Run("short password does not consume the invite", func(t *testing.T) {
		users := new(MockUserStore)
		invites := new(MockInviteStore)
		svc := newAuthService(users, invites, new(MockEventPublisher))

		users.On("EmailExists", mock.Anything, "ravi@example.com").Return(false, nil)

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:        "Ravi",
			Email:       "ravi@example.com",
			Password:    "short",
			InviteToken: "tok-123",
		})
		assert.True(t, IsValidationError(err))
		invites.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	})

	t.Run("rejects platform admin self-registration", func(t *testing.T) {
		users := new(MockUserStore)
		svc := newAuthService(users, new(MockInviteStore), new(MockEventPublisher))

		_, err := svc.Register(context.Background(), &models.RegisterRequest{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: "password123",
			Role:     models.RolePlatformAdmin,
		})
		assert.True(t, IsValidationError(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	password := NewPasswordService()
	hash, err := password.HashPassword("password123")
	require.NoError(t, err)

	approved := func() *models.User {
		return &models.User{
			ID:       uuid.New(),
			TenantID: uuid.New(),
			Email:    "ravi@example.com",
			Password: hash,
			Role:     models.RoleTeacher,
			Status:   models.StatusApproved,
		}
	}

	t.Run("issues token for valid credentials", func(t *testing.T) {
		users := new(MockUserStore)
		svc := newAuthService(users, new(MockInviteStore), new(MockEventPublisher))

		users.On("GetByEmail", mock.Anything, "ravi@example.com").Return(approved(), nil)

		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "Ravi@Example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Empty(t, resp.User.Password)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		users := new(MockUserStore)
		svc := newAuthService(users, new(MockInviteStore), new(MockEventPublisher))

		users.On("GetByEmail", mock.Anything, "missing@example.com").Return(nil, repository.ErrNotFound)
		users.On("GetByEmail", mock.Anything, "ravi@example.com").Return(approved(), nil)

		_, missingErr := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "missing@example.com",
			Password: "password123",
		})
		_, wrongErr := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "ravi@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, missingErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	})

	t.Run("rejected account cannot log in", func(t *testing.T) {
		users := new(MockUserStore)
		svc := newAuthService(users, new(MockInviteStore), new(MockEventPublisher))

		user := approved()
		user.Status = models.StatusRejected
		users.On("GetByEmail", mock.Anything, "ravi@example.com").Return(user, nil)

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "ravi@example.com",
			Password: "password123",
		})
		assert.True(t, IsAuthError(err))
	})
}
