package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment and Order are migrated schema scaffolding for the payment and
// progress-tracking features; no HTTP surface is wired to them yet.
type Enrollment struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID          uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	UserID            uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	CourseID          uuid.UUID `json:"course_id" gorm:"type:uuid;index;not null"`
	Progress          int       `json:"progress" gorm:"default:0"`
	CompletedChapters int       `json:"completed_chapters" gorm:"default:0"`
	Status            string    `json:"status" gorm:"type:varchar(50);default:'active'"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type Order struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID       uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	CourseID       uuid.UUID `json:"course_id" gorm:"type:uuid;index;not null"`
	Amount         float64   `json:"amount" gorm:"not null"`
	Currency       string    `json:"currency" gorm:"type:varchar(10);default:'INR'"`
	Gateway        string    `json:"gateway" gorm:"type:varchar(50)"`
	GatewayOrderID string    `json:"gateway_order_id" gorm:"type:varchar(255)"`
	Status         string    `json:"status" gorm:"type:varchar(50);default:'created'"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
