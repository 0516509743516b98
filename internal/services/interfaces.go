package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/models"
)

// Store interfaces consumed by the service layer. The gorm-backed
// implementations live in internal/repository; tests substitute mocks.
// Absence and cross-tenant misses both surface as repository.ErrNotFound.

type TenantStore interface {
	CreateWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.User) error
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByTenant(ctx context.Context, tenantID, excludeID uuid.UUID, p models.Pagination) ([]models.User, int64, error)
	UpdateRoleAndStatus(ctx context.Context, tenantID, id uuid.UUID, role, status string) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type InviteStore interface {
	Create(ctx context.Context, invite *models.InviteToken) error
	Consume(ctx context.Context, token string) (*models.InviteToken, error)
}

type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Course, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	DeleteWithSubjects(ctx context.Context, tenantID, id uuid.UUID) error
}

type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Subject, error)
	ListByCourse(ctx context.Context, tenantID, courseID uuid.UUID) ([]models.Subject, error)
	CountByCourse(ctx context.Context, tenantID, courseID uuid.UUID) (int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type ChapterStore interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Chapter, error)
	ListBySubject(ctx context.Context, tenantID, subjectID uuid.UUID) ([]models.Chapter, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type VideoStore interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Video, error)
	ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Video, int64, error)
	ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Video, int64, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type ResourceStore interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Resource, error)
	ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error)
	ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// EventPublisher decouples services from the NATS client; a no-op
// implementation is used when the broker is unavailable.
type EventPublisher interface {
	PublishTenantCreated(event events.TenantCreatedEvent)
	PublishUserRegistered(event events.UserRegisteredEvent)
	PublishMediaUploaded(event events.MediaEvent)
	PublishMediaDeleted(event events.MediaEvent)
}

// EmailSender delivers invite mail.
type EmailSender interface {
	SendInviteEmail(to, tenantName, inviteLink string) error
}
