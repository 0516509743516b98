package models

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

// Media source types. Uploads live in object storage under an opaque key
// and are only ever served through presigned URLs; links are stored as-is.
const (
	MediaTypeUpload = "upload"
	MediaTypeLink   = "link"
)

const (
	VideoLevelFree    = "free"
	VideoLevelPremium = "premium"
)

const (
	ResourceCategoryNotes = "notes"
	ResourceCategoryDPP   = "dpp"
	ResourceCategoryOther = "other"
)

// ValidVideoLevel reports whether level is a recognized value.
func ValidVideoLevel(level string) bool {
	switch level {
	case VideoLevelFree, VideoLevelPremium:
		return true
	}
	return false
}

// ValidResourceCategory reports whether category is a recognized value.
func ValidResourceCategory(category string) bool {
	switch category {
	case ResourceCategoryNotes, ResourceCategoryDPP, ResourceCategoryOther:
		return true
	}
	return false
}

// Video metadata. ChapterID nil means standalone (not yet attached to the
// catalog hierarchy). StorageKey holds the opaque object key for uploads
// and is never exposed directly; URL holds the external address for links.
type Video struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     uuid.UUID      `json:"tenant_id" gorm:"type:uuid;index;not null"`
	CourseID     *uuid.UUID     `json:"course_id,omitempty" gorm:"type:uuid;index"`
	ChapterID    *uuid.UUID     `json:"chapter_id,omitempty" gorm:"type:uuid;index"`
	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Type         string         `json:"type" gorm:"type:varchar(20);not null"`
	StorageKey   string         `json:"-" gorm:"type:varchar(512)"`
	URL          string         `json:"url,omitempty" gorm:"type:varchar(1024)"`
	ThumbnailKey string         `json:"-" gorm:"type:varchar(512)"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty" gorm:"-"`
	MimeType     string         `json:"mime_type,omitempty" gorm:"type:varchar(100)"`
	Level        string         `json:"level" gorm:"type:varchar(20);default:'free'"`
	Language     string         `json:"language" gorm:"type:varchar(50);default:'Hindi'"`
	CreatedBy    uuid.UUID      `json:"created_by" gorm:"type:uuid"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Video) TableName() string {
	return "videos"
}

type Resource struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   uuid.UUID      `json:"tenant_id" gorm:"type:uuid;index;not null"`
	CourseID   *uuid.UUID     `json:"course_id,omitempty" gorm:"type:uuid;index"`
	ChapterID  *uuid.UUID     `json:"chapter_id,omitempty" gorm:"type:uuid;index"`
	Title      string         `json:"title" gorm:"type:varchar(255);not null"`
	Category   string         `json:"category" gorm:"type:varchar(20);default:'other'"`
	Type       string         `json:"type" gorm:"type:varchar(20);not null"`
	StorageKey string         `json:"-" gorm:"type:varchar(512)"`
	URL        string         `json:"url,omitempty" gorm:"type:varchar(1024)"`
	MimeType   string         `json:"mime_type,omitempty" gorm:"type:varchar(100)"`
	CreatedBy  uuid.UUID      `json:"created_by" gorm:"type:uuid"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Resource) TableName() string {
	return "resources"
}

type AddVideoLinkRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
	CourseID    string `json:"courseId,omitempty"`
	ChapterID   string `json:"chapterId,omitempty"`
	Level       string `json:"level,omitempty"`
	Language    string `json:"language,omitempty"`
}

type AddResourceLinkRequest struct {
	Title     string `json:"title" binding:"required"`
	URL       string `json:"url" binding:"required"`
	Category  string `json:"category,omitempty"`
	CourseID  string `json:"courseId,omitempty"`
	ChapterID string `json:"chapterId,omitempty"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ChapterID   *string `json:"chapterId,omitempty"`
	Level       *string `json:"level,omitempty"`
	Language    *string `json:"language,omitempty"`
}

// Pagination carries bounded caller-supplied paging. Limit is clamped to
// MaxPageSize so a single request cannot drain the table.
type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize applies defaults and bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// Offset returns the row offset for the normalized page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PagedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
