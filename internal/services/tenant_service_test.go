package services

import (
	"context"
	"errors"
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

type tenantServiceMocks struct {
	tenants   *MockTenantStore
	users     *MockUserStore
	invites   *MockInviteStore
	store     *MockStorageProvider
	email     *MockEmailSender
	publisher *MockEventPublisher
}

func newTenantService(t *testing.T) (*TenantService, *tenantServiceMocks) {
	t.Helper()
	m := &tenantServiceMocks{
		tenants:   new(MockTenantStore),
		users:     new(MockUserStore),
		invites:   new(MockInviteStore),
		store:     new(MockStorageProvider),
		email:     new(MockEmailSender),
		publisher: new(MockEventPublisher),
	}
	svc := NewTenantService(
		m.tenants,
		m.users,
		m.invites,
		NewPasswordService(),
		m.store,
		m.email,
		m.publisher,
		testLogger(),
		"https://app.example.com",
		72*time.Hour,
	)
	return svc, m
}

func validTenantRequest() *models.CreateTenantRequest {
	return &models.CreateTenantRequest{
		Name:        "Acme Academy",
		CompanyName: "Acme Pvt Ltd",
		Email:       "admin@acme.com",
		Password:    "password123",
	}
}

func TestTenantService_CreateTenant(t *testing.T) {
	t.Run("creates tenant with approved admin", func(t *testing.T) {
		svc, m := newTenantService(t)

		m.users.On("EmailExists", mock.Anything, "admin@acme.com").Return(false, nil)
		m.tenants.On("SlugExists", mock.Anything, "acme-academy").Return(false, nil)
		m.tenants.On("CreateWithAdmin", mock.Anything, mock.AnythingOfType("*models.Tenant"), mock.AnythingOfType("*models.User")).Return(nil)
		m.publisher.On("PublishTenantCreated", mock.Anything).Return()

		resp, err := svc.CreateTenant(context.Background(), validTenantRequest(), nil)
		require.NoError(t, err)
		assert.Equal(t, "acme-academy", resp.Tenant.Slug)
		assert.Equal(t, models.RoleAdmin, resp.Admin.Role)
		assert.Equal(t, models.StatusApproved, resp.Admin.Status)
		assert.Empty(t, resp.Admin.Password)
		m.tenants.AssertExpectations(t)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _ := newTenantService(t)

		cases := []*models.CreateTenantRequest{
			{CompanyName: "Acme", Email: "a@b.com", Password: "password123"},
			{Name: "Acme", Email: "a@b.com", Password: "password123"},
			{Name: "Acme", CompanyName: "Acme", Password: "password123"},
			{Name: "Acme", CompanyName: "Acme", Email: "a@b.com"},
			{Name: "Acme", CompanyName: "Acme", Email: "bad-email", Password: "password123"},
		}
		for _, req := range cases {
			_, err := svc.CreateTenant(context.Background(), req, nil)
			assert.True(t, IsValidationError(err), "request %+v should fail validation", req)
		}
	})

	t.Run("duplicate admin email is a conflict", func(t *testing.T) {
		svc, m := newTenantService(t)

		m.users.On("EmailExists", mock.Anything, "admin@acme.com").Return(true, nil)

		_, err := svc.CreateTenant(context.Background(), validTenantRequest(), nil)
		assert.True(t, IsConflictError(err))
		m.tenants.AssertNotCalled(t, "CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-image logo is rejected before storage", func(t *testing.T) {
		svc, m := newTenantService(t)

		m.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
		m.tenants.On("SlugExists", mock.Anything, mock.Anything).Return(false, nil)

		logo := &FileUpload{FileName: "logo.exe", ContentType: "application/octet-stream", Content: strings.NewReader("x")}
		_, err := svc.CreateTenant(context.Background(), validTenantRequest(), logo)
		assert.True(t, IsValidationError(err))
		m.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uploaded logo is removed when the transaction fails", func(t *testing.T) {
		svc, m := newTenantService(t)

		m.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
		m.tenants.On("SlugExists", mock.Anything, mock.Anything).Return(false, nil)
		m.store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").Return(nil)
		m.tenants.On("CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))
		m.store.On("Delete", mock.Anything, mock.Anything).Return(nil)

		logo := &FileUpload{FileName: "logo.png", ContentType: "image/png", Content: strings.NewReader("png")}
		_, err := svc.CreateTenant(context.Background(), validTenantRequest(), logo)
		require.Error(t, err)
		m.store.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTenantService_GenerateSlug(t *testing.T) {
	t.Run("normalizes the name", func(t *testing.T) {
		svc, m := newTenantService(t)
		m.tenants.On("SlugExists", mock.Anything, "ravis-coaching-centre").Return(false, nil)

		slug, err := svc.generateSlug(context.Background(), "  Ravi's Coaching Centre! ")
		require.NoError(t, err)
		assert.Equal(t, "ravis-coaching-centre", slug)
	})

	t.Run("probes past collisions", func(t *testing.T) {
		svc, m := newTenantService(t)
		m.tenants.On("SlugExists", mock.Anything, "acme").Return(true, nil)
		m.tenants.On("SlugExists", mock.Anything, "acme-1").Return(true, nil)
		m.tenants.On("SlugExists", mock.Anything, "acme-2").Return(false, nil)

		slug, err := svc.generateSlug(context.Background(), "Acme")
		require.NoError(t, err)
		assert.Equal(t, "acme-2", slug)
	})

	t.Run("skips reserved slugs", func(t *testing.T) {
		svc, m := newTenantService(t)
		m.tenants.On("SlugExists", mock.Anything, "admin-1").Return(false, nil)

		slug, err := svc.generateSlug(context.Background(), "Admin")
		require.NoError(t, err)
		assert.Equal(t, "admin-1", slug)
	})

	t.Run("falls back when nothing survives stripping", func(t *testing.T) {
		svc, m := newTenantService(t)
		m.tenants.On("SlugExists", mock.Anything, "tenant").Return(false, nil)

		slug, err := svc.generateSlug(context.Background(), "!!!")
		require.NoError(t, err)
		assert.Equal(t, "tenant", slug)
	})
}

func TestTenantService_GetTenant(t *testing.T) {
	svc, m := newTenantService(t)

	m.tenants.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.GetTenant(context.Background(), "missing")
	assert.True(t, IsNotFoundError(err))
}

func TestTenantService_SendInvite(t *testing.T) {
	t.Run("persists token and sends mail", func(t *testing.T) {
		svc, m := newTenantService(t)

		tenantID := uuid.New()
		m.tenants.On("GetByID", mock.Anything, tenantID.String()).Return(&models.Tenant{ID: tenantID, Name: "Acme"}, nil)
		m.invites.On("Create", mock.Anything, mock.AnythingOfType("*models.InviteToken")).Return(nil)
		m.email.On("SendInviteEmail", "teacher@acme.com", "Acme", mock.Anything).Return(nil)

		link, err := svc.SendInvite(context.Background(), tenantID, uuid.New(), "Teacher@Acme.com ")
		require.NoError(t, err)
		assert.Contains(t, link, "https://app.example.com/register?tenant="+tenantID.String())
		m.email.AssertExpectations(t)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		svc, _ := newTenantService(t)

		_, err := svc.SendInvite(context.Background(), uuid.New(), uuid.New(), "not-an-email")
		assert.True(t, IsValidationError(err))
	})
}
