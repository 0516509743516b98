package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
	"github.com/Avinash9006/InfinityPower/internal/storage"
)

// maxSlugAttempts bounds the collision probe; hitting it means something
// is pathological about the tenant name space.
const maxSlugAttempts = 100

var slugStripPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugs that would collide with routing or infrastructure paths.
var reservedSlugs = map[string]bool{
	"admin": true, "api": true, "app": true, "auth": true,
	"login": true, "register": true, "dashboard": true,
	"www": true, "static": true, "media": true, "health": true,
	"metrics": true, "internal": true, "test": true,
}

// FileUpload is an in-flight multipart file handed from handler to
// service.
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// TenantService creates and reads tenants and dispatches invites.
type TenantService struct {
	tenants   TenantStore
	users     UserStore
	invites   InviteStore
	password  *PasswordService
	storage   storage.Provider
	email     EmailSender
	publisher EventPublisher
	logger    *logrus.Logger

	frontendURL    string
	inviteTokenTTL time.Duration
}

func NewTenantService(
	tenants TenantStore,
	users UserStore,
	invites InviteStore,
	password *PasswordService,
	store storage.Provider,
	email EmailSender,
	publisher EventPublisher,
	logger *logrus.Logger,
	frontendURL string,
	inviteTokenTTL time.Duration,
) *TenantService {
	return &TenantService{
		tenants:        tenants,
		users:          users,
		invites:        invites,
		password:       password,
		storage:        store,
		email:          email,
		publisher:      publisher,
		logger:         logger,
		frontendURL:    frontendURL,
		inviteTokenTTL: inviteTokenTTL,
	}
}

// CreateTenant registers a tenant together with its initial admin
// account. The two rows are written in one transaction; an uploaded logo
// is removed again if that transaction fails.
func (s *TenantService) CreateTenant(ctx context.Context, req *models.CreateTenantRequest, logo *FileUpload) (*models.TenantResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if req.CompanyName == "" {
		return nil, NewValidationError("companyName", "company name is required")
	}
	if req.Email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, NewValidationError("email", "invalid email format")
	}
	if req.Password == "" {
		return nil, NewValidationError("password", "password is required")
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewConflictError("user", "email already registered")
	}

	slug, err := s.generateSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:          uuid.New(),
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Slug:        slug,
	}

	if logo != nil {
		if !strings.HasPrefix(logo.ContentType, "image/") {
			return nil, NewValidationError("logo", "logo must be an image")
		}
		key := fmt.Sprintf("tenants/%s/logo/%s%s", tenant.ID, uuid.New(), path.Ext(logo.FileName))
		if err := s.storage.Upload(ctx, key, logo.Content, logo.ContentType); err != nil {
			return nil, fmt.Errorf("failed to upload logo: %w", err)
		}
		tenant.LogoKey = key
	}

	admin := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleAdmin,
		Status:   models.StatusApproved,
	}

	if err := s.tenants.CreateWithAdmin(ctx, tenant, admin); err != nil {
		if tenant.LogoKey != "" {
			if cleanupErr := s.storage.Delete(ctx, tenant.LogoKey); cleanupErr != nil {
				s.logger.WithError(cleanupErr).WithField("key", tenant.LogoKey).Warn("Failed to remove logo after tenant creation failure")
			}
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError("tenant", "tenant slug or admin email already exists")
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenant.ID,
		"slug":      tenant.Slug,
		"admin_id":  admin.ID,
	}).Info("Tenant created")

	s.publisher.PublishTenantCreated(events.TenantCreatedEvent{
		TenantID:    tenant.ID.String(),
		Name:        tenant.Name,
		Slug:        tenant.Slug,
		AdminUserID: admin.ID.String(),
	})

	return &models.TenantResponse{Tenant: tenant, Admin: admin.Sanitized()}, nil
}

// generateSlug lower-cases and hyphenates the name, then probes for
// collisions appending -1, -2, ... A concurrent create with the same
// base can still race past the probe; the unique index catches it at
// write time.
func (s *TenantService) generateSlug(ctx context.Context, name string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.Join(strings.Fields(base), "-")
	base = slugStripPattern.ReplaceAllString(base, "")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "tenant"
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		if !reservedSlugs[candidate] {
			taken, err := s.tenants.SlugExists(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("could not derive a unique slug for %q", name)
}

// ListTenants returns all tenants. Platform admin only; enforced at the
// route.
func (s *TenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return s.tenants.List(ctx)
}

func (s *TenantService) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFoundError("tenant")
		}
		return nil, err
	}
	return tenant, nil
}

// SendInvite persists a single-use token and emails a registration link
// scoped to the tenant.
func (s *TenantService) SendInvite(ctx context.Context, tenantID uuid.UUID, createdBy uuid.UUID, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return "", NewValidationError("email", "invalid email format")
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID.String())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", NewNotFoundError("tenant")
		}
		return "", err
	}

	token, err := s.password.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}

	invite := &models.InviteToken{
		TenantID:  tenantID,
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.inviteTokenTTL),
		CreatedBy: createdBy,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/register?tenant=%s&token=%s", s.frontendURL, tenantID, token)
	if err := s.email.SendInviteEmail(email, tenant.Name, link); err != nil {
		return "", fmt.Errorf("failed to send invite email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"email":     email,
	}).Info("Invite sent")

	return link, nil
}
