package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration and login. Tokens are issued here;
// verification lives in the middleware layer.
type AuthService struct {
	users     UserStore
	invites   InviteStore
	password  *PasswordService
	jwt       *JWTService
	publisher EventPublisher
	logger    *logrus.Logger
}

func NewAuthService(users UserStore, invites InviteStore, password *PasswordService, jwt *JWTService, publisher EventPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		invites:   invites,
		password:  password,
		jwt:       jwt,
		publisher: publisher,
		logger:    logger,
	}
}

// Register creates an account and issues a token. A presented invite
// token is consumed atomically and overrides any tenant id in the
// request body.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
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

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, NewValidationError("role", "invalid role")
	}
	if role == models.RolePlatformAdmin {
		return nil, NewValidationError("role", "cannot self-register as platform admin")
	}

	tenantID := uuid.Nil
	if req.TenantID != "" {
		parsed, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, NewValidationError("tenantId", "invalid tenant id")
		}
		tenantID = parsed
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewConflictError("user", "email already registered")
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// The invite is single-use, so it is consumed only after every other
	// validation has passed; a rejected registration must not burn it.
	if req.InviteToken != "" {
		invite, err := s.invites.Consume(ctx, req.InviteToken)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewValidationError("inviteToken", "invite token is invalid, expired or already used")
			}
			return nil, err
		}
		tenantID = invite.TenantID
	}

	user := &models.User{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		Status:   models.StatusPending,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewConflictError("user", "email already registered")
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role,
	}).Info("User registered")

	s.publisher.PublishUserRegistered(events.UserRegisteredEvent{
		UserID:   user.ID.String(),
		TenantID: tenantIDString(user.TenantID),
		Email:    user.Email,
		Role:     user.Role,
	})

	return &models.AuthResponse{User: user.Sanitized(), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.password.VerifyPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.Status == models.StatusRejected {
		return nil, NewAuthError("ACCOUNT_REJECTED", "account has been rejected")
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
	}).Info("User logged in")

	return &models.AuthResponse{User: user.Sanitized(), Token: token}, nil
}

func tenantIDString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
