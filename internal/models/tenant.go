package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the root of the ownership tree. Every other entity carries a
// tenant id and is invisible outside its tenant.
type Tenant struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	CompanyName    string    `json:"company_name" gorm:"type:varchar(255);not null"`
	Slug           string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	LogoKey        string    `json:"-" gorm:"type:varchar(512)"`
	PrimaryColor   string    `json:"primary_color" gorm:"type:varchar(32)"`
	SecondaryColor string    `json:"secondary_color" gorm:"type:varchar(32)"`
	BillingPlan    string    `json:"billing_plan" gorm:"type:varchar(50);default:'free'"`
	CustomDomain   string    `json:"custom_domain,omitempty" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// CreateTenantRequest arrives as multipart form data so the logo file can
// ride along with the registration fields.
type CreateTenantRequest struct {
	Name        string `form:"name" binding:"required"`
	CompanyName string `form:"companyName" binding:"required"`
	Email       string `form:"email" binding:"required"`
	Password    string `form:"password" binding:"required"`
}

type SendInviteRequest struct {
	Email string `json:"email" binding:"required"`
}

// TenantResponse pairs the new tenant with its initial admin account.
type TenantResponse struct {
	Tenant *Tenant `json:"tenant"`
	Admin  *User   `json:"admin_user,omitempty"`
}
