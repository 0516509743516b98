package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// MockTenantStore is a mock implementation of TenantStore
type MockTenantStore struct {
	mock.Mock
}

func (m *MockTenantStore) CreateWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.User) error {
	args := m.Called(ctx, tenant, admin)
	return args.Error(0)
}

func (m *MockTenantStore) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantStore) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantStore) List(ctx context.Context) ([]models.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tenant), args.Error(1)
}

func (m *MockTenantStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockUserStore is a mock implementation of UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ListByTenant(ctx context.Context, tenantID, excludeID uuid.UUID, p models.Pagination) ([]models.User, int64, error) {
	args := m.Called(ctx, tenantID, excludeID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserStore) UpdateRoleAndStatus(ctx context.Context, tenantID, id uuid.UUID, role, status string) error {
	args := m.Called(ctx, tenantID, id, role, status)
	return args.Error(0)
}

func (m *MockUserStore) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockInviteStore is a mock implementation of InviteStore
type MockInviteStore struct {
	mock.Mock
}

func (m *MockInviteStore) Create(ctx context.Context, invite *models.InviteToken) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteStore) Consume(ctx context.Context, token string) (*models.InviteToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteToken), args.Error(1)
}

// MockCourseStore is a mock implementation of CourseStore
type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseStore) List(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Course, int64, error) {
	args := m.Called(ctx, tenantID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseStore) Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, tenantID, id, fields)
	return args.Error(0)
}

func (m *MockCourseStore) DeleteWithSubjects(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockSubjectStore is a mock implementation of SubjectStore
type MockSubjectStore struct {
	mock.Mock
}

func (m *MockSubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Subject, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectStore) ListByCourse(ctx context.Context, tenantID, courseID uuid.UUID) ([]models.Subject, error) {
	args := m.Called(ctx, tenantID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectStore) CountByCourse(ctx context.Context, tenantID, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, courseID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubjectStore) Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, tenantID, id, fields)
	return args.Error(0)
}

func (m *MockSubjectStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockChapterStore is a mock implementation of ChapterStore
type MockChapterStore struct {
	mock.Mock
}

func (m *MockChapterStore) Create(ctx context.Context, chapter *models.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Chapter, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterStore) ListBySubject(ctx context.Context, tenantID, subjectID uuid.UUID) ([]models.Chapter, error) {
	args := m.Called(ctx, tenantID, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

func (m *MockChapterStore) Update(ctx context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, tenantID, id, fields)
	return args.Error(0)
}

func (m *MockChapterStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockVideoStore is a mock implementation of VideoStore
type MockVideoStore struct {
	mock.Mock
}

func (m *MockVideoStore) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *MockVideoStore) ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Video, int64, error) {
	args := m.Called(ctx, tenantID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoStore) ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Video, int64, error) {
	args := m.Called(ctx, tenantID, chapterID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoStore) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockResourceStore is a mock implementation of ResourceStore
type MockResourceStore struct {
	mock.Mock
}

func (m *MockResourceStore) Create(ctx context.Context, resource *models.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Resource, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

func (m *MockResourceStore) ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error) {
	args := m.Called(ctx, tenantID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceStore) ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error) {
	args := m.Called(ctx, tenantID, chapterID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockStorageProvider is a mock implementation of storage.Provider
type MockStorageProvider struct {
	mock.Mock
}

func (m *MockStorageProvider) Upload(ctx context.Context, key string, content io.Reader, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

func (m *MockStorageProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageProvider) SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}

// MockURLCache is a mock implementation of cache.URLCache
type MockURLCache struct {
	mock.Mock
}

func (m *MockURLCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockURLCache) Set(ctx context.Context, key, url string, ttl time.Duration) {
	m.Called(ctx, key, url, ttl)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishTenantCreated(event events.TenantCreatedEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishUserRegistered(event events.UserRegisteredEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishMediaUploaded(event events.MediaEvent) {
	m.Called(event)
}

func (m *MockEventPublisher) PublishMediaDeleted(event events.MediaEvent) {
	m.Called(event)
}

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInviteEmail(to, tenantName, inviteLink string) error {
	args := m.Called(to, tenantName, inviteLink)
	return args.Error(0)
}
