package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
)

type userServiceMocks struct {
	users   *MockUserStore
	invites *MockInviteStore
	store   *MockStorageProvider
}

func newUserService(t *testing.T) (*UserService, *userServiceMocks) {
	t.Helper()
	m := &userServiceMocks{
		users:   new(MockUserStore),
		invites: new(MockInviteStore),
		store:   new(MockStorageProvider),
	}
	svc := NewUserService(m.users, m.invites, NewPasswordService(), m.store, testLogger(), "https://app.example.com", 72*time.Hour)
	return svc, m
}

func TestUserService_ListUsers(t *testing.T) {
	svc, m := newUserService(t)

	tenantID, callerID := uuid.New(), uuid.New()
	m.users.On("ListByTenant", mock.Anything, tenantID, callerID, models.Pagination{Page: 1, Limit: 10}).
		Return([]models.User{{Email: "a@b.com", Password: "hash"}}, int64(1), nil)

	result, err := svc.ListUsers(context.Background(), tenantID, callerID, models.Pagination{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Empty(t, result.Items[0].Password)
	assert.Equal(t, int64(1), result.Total)
}

func TestUserService_ApproveAndAssignRole(t *testing.T) {
	t.Run("approves and assigns in one transition", func(t *testing.T) {
		svc, m := newUserService(t)

		tenantID, userID := uuid.New(), uuid.New()
		m.users.On("UpdateRoleAndStatus", mock.Anything, tenantID, userID, models.RoleTeacher, models.StatusApproved).Return(nil)

		require.NoError(t, svc.ApproveAndAssignRole(context.Background(), tenantID, userID.String(), models.RoleTeacher))
		m.users.AssertExpectations(t)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		svc, _ := newUserService(t)

		err := svc.ApproveAndAssignRole(context.Background(), uuid.New(), "not-a-uuid", models.RoleTeacher)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _ := newUserService(t)

		err := svc.ApproveAndAssignRole(context.Background(), uuid.New(), uuid.New().String(), "overlord")
		assert.True(t, IsValidationError(err))
	})

	t.Run("platform admin cannot be assigned", func(t *testing.T) {
		svc, m := newUserService(t)

		err := svc.ApproveAndAssignRole(context.Background(), uuid.New(), uuid.New().String(), models.RolePlatformAdmin)
		assert.True(t, IsValidationError(err))
		m.users.AssertNotCalled(t, "UpdateRoleAndStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cross-tenant target is not found", func(t *testing.T) {
		svc, m := newUserService(t)

		tenantID, userID := uuid.New(), uuid.New()
		m.users.On("UpdateRoleAndStatus", mock.Anything, tenantID, userID, models.RoleStudent, models.StatusApproved).
			Return(repository.ErrNotFound)

		err := svc.ApproveAndAssignRole(context.Background(), tenantID, userID.String(), models.RoleStudent)
		assert.True(t, IsNotFoundError(err))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("deletes within tenant", func(t *testing.T) {
		svc, m := newUserService(t)

		tenantID, userID := uuid.New(), uuid.New()
		m.users.On("Delete", mock.Anything, tenantID, userID).Return(nil)

		require.NoError(t, svc.DeleteUser(context.Background(), tenantID, userID.String()))
	})

	t.Run("miss is not found", func(t *testing.T) {
		svc, m := newUserService(t)

		tenantID, userID := uuid.New(), uuid.New()
		m.users.On("Delete", mock.Anything, tenantID, userID).Return(repository.ErrNotFound)

		err := svc.DeleteUser(context.Background(), tenantID, userID.String())
		assert.True(t, IsNotFoundError(err))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	existing := func() *models.User {
		return &models.User{
			ID:       uuid.New(),
			TenantID: uuid.New(),
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Role:     models.RoleTeacher,
		}
	}

	t.Run("changes name and designation", func(t *testing.T) {
		svc, m := newUserService(t)
		user := existing()

		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		m.users.On("Update", mock.Anything, user).Return(nil)

		name, designation := "Ravi Kumar", "Senior Faculty"
		updated, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
			Name:        &name,
			Designation: &designation,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", updated.Name)
		assert.Equal(t, "Senior Faculty", updated.Designation)
	})

	t.Run("changed email must be free", func(t *testing.T) {
		svc, m := newUserService(t)
		user := existing()

		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		m.users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

		email := "taken@example.com"
		_, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{Email: &email}, nil)
		assert.True(t, IsConflictError(err))
	})

	t.Run("non-image profile picture is rejected", func(t *testing.T) {
		svc, m := newUserService(t)
		user := existing()

		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		image := &FileUpload{FileName: "cv.pdf", ContentType: "application/pdf", Content: strings.NewReader("pdf")}
		_, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{}, image)
		assert.True(t, IsValidationError(err))
		m.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_GenerateInviteLink(t *testing.T) {
	svc, m := newUserService(t)

	tenantID := uuid.New()
	m.invites.On("Create", mock.Anything, mock.AnythingOfType("*models.InviteToken")).Return(nil)

	link, err := svc.GenerateInviteLink(context.Background(), tenantID, uuid.New())
	require.NoError(t, err)
	assert.Contains(t, link, "https://app.example.com/register?tenant="+tenantID.String())
	assert.Contains(t, link, "&token=")
	m.invites.AssertExpectations(t)
}
