package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
	"github.com/Avinash9006/InfinityPower/internal/storage"
)

// UserService covers tenant user management and profile self-service.
type UserService struct {
	users    UserStore
	invites  InviteStore
	password *PasswordService
	storage  storage.Provider
	logger   *logrus.Logger

	frontendURL    string
	inviteTokenTTL time.Duration
}

func NewUserService(users UserStore, invites InviteStore, password *PasswordService, store storage.Provider, logger *logrus.Logger, frontendURL string, inviteTokenTTL time.Duration) *UserService {
	return &UserService{
		users:          users,
		invites:        invites,
		password:       password,
		storage:        store,
		logger:         logger,
		frontendURL:    frontendURL,
		inviteTokenTTL: inviteTokenTTL,
	}
}

// ListUsers returns the tenant's users newest-first, excluding the
// caller.
func (s *UserService) ListUsers(ctx context.Context, tenantID, callerID uuid.UUID, p models.Pagination) (*models.PagedResult[models.User], error) {
	p.Normalize()
	users, total, err := s.users.ListByTenant(ctx, tenantID, callerID, p)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return &models.PagedResult[models.User]{Items: users, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// ApproveAndAssignRole is the explicit transition that both assigns a
// role and approves the account. The two fields change together in one
// tenant-scoped update, never separately.
func (s *UserService) ApproveAndAssignRole(ctx context.Context, tenantID uuid.UUID, userID, role string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return NewValidationError("userId", "invalid user id")
	}
	if !models.ValidRole(role) {
		return NewValidationError("role", "invalid role")
	}
	if role == models.RolePlatformAdmin {
		return NewValidationError("role", "cannot assign platform admin role")
	}

	if err := s.users.UpdateRoleAndStatus(ctx, tenantID, id, role, models.StatusApproved); err != nil {
		return notFoundAs(err, "user")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   id,
		"tenant_id": tenantID,
		"role":      role,
	}).Info("User approved and role assigned")
	return nil
}

// DeleteUser removes a user within the caller's tenant only.
func (s *UserService) DeleteUser(ctx context.Context, tenantID uuid.UUID, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return NewValidationError("userId", "invalid user id")
	}
	if err := s.users.Delete(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "user")
	}
	return nil
}

// GetProfile returns the caller's own record without the password hash.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}
	return user.Sanitized(), nil
}

// UpdateProfile applies self-service changes: email is re-validated,
// password re-hashed, and an optional profile image stored.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest, image *FileUpload) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewValidationError("name", "name cannot be empty")
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return nil, NewValidationError("email", "invalid email format")
		}
		if email != user.Email {
			exists, err := s.users.EmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, NewConflictError("user", "email already registered")
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		hash, err := s.password.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if req.Designation != nil {
		user.Designation = *req.Designation
	}

	if image != nil {
		if !strings.HasPrefix(image.ContentType, "image/") {
			return nil, NewValidationError("profileImage", "profile image must be an image")
		}
		key := fmt.Sprintf("tenants/%s/profiles/%s%s", user.TenantID, uuid.New(), path.Ext(image.FileName))
		if err := s.storage.Upload(ctx, key, image.Content, image.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store profile image: %w", err)
		}
		if user.ProfileImageKey != "" {
			if err := s.storage.Delete(ctx, user.ProfileImageKey); err != nil {
				s.logger.WithError(err).WithField("key", user.ProfileImageKey).Warn("Failed to remove old profile image")
			}
		}
		user.ProfileImageKey = key
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError("user", "email already registered")
		}
		return nil, err
	}
	return user.Sanitized(), nil
}

// GenerateInviteLink persists a single-use token and returns the
// registration URL carrying it.
func (s *UserService) GenerateInviteLink(ctx context.Context, tenantID, createdBy uuid.UUID) (string, error) {
	token, err := s.password.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}

	invite := &models.InviteToken{
		TenantID:  tenantID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.inviteTokenTTL),
		CreatedBy: createdBy,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/register?tenant=%s&token=%s", s.frontendURL, tenantID, token), nil
}
