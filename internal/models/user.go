package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles, lowest privilege last. Platform admins operate across tenants;
// everyone else belongs to exactly one.
const (
	RolePlatformAdmin = "platform_admin"
	RoleAdmin         = "admin"
	RoleTeacher       = "teacher"
	RoleStudent       = "student"
	RoleAnonymous     = "anonymous"
)

// Account lifecycle states. Role assignment by an admin moves a user to
// StatusApproved through an explicit transition, never as a side effect
// of a generic update.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidRole reports whether role is one of the recognized role values.
func ValidRole(role string) bool {
	switch role {
	case RolePlatformAdmin, RoleAdmin, RoleTeacher, RoleStudent, RoleAnonymous:
		return true
	}
	return false
}

// User is a tenant-scoped account. TenantID is uuid.Nil only for
// platform admins. Email uniqueness is global, enforced by the index.
type User struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID        uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null"`
	Email           string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password        string    `json:"-" gorm:"type:varchar(255);not null"`
	Role            string    `json:"role" gorm:"type:varchar(50);default:'student';index"`
	Status          string    `json:"status" gorm:"type:varchar(50);default:'pending'"`
	Designation     string    `json:"designation,omitempty" gorm:"type:varchar(255)"`
	ProfileImageKey string    `json:"-" gorm:"type:varchar(512)"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Sanitized returns a copy safe to embed in responses. The password hash
// is already excluded from JSON; this also drops internal storage keys.
func (u *User) Sanitized() *User {
	clone := *u
	clone.Password = ""
	return &clone
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
	InviteToken string `json:"inviteToken,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Designation *string `json:"designation,omitempty"`
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// InviteToken is a persisted, single-use registration grant. Consuming a
// token stamps UsedAt; expired or used tokens are rejected.
type InviteToken struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  uuid.UUID  `json:"tenant_id" gorm:"type:uuid;index;not null"`
	Email     string     `json:"email,omitempty" gorm:"type:varchar(255)"`
	Token     string     `json:"-" gorm:"type:varchar(128);uniqueIndex;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (InviteToken) TableName() string {
	return "invite_tokens"
}
