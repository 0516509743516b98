package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
)

// CatalogService manages the Course → Subject → Chapter hierarchy.
// Every lookup pairs id with tenant id, so cross-tenant probing is
// indistinguishable from absence.
type CatalogService struct {
	courses  CourseStore
	subjects SubjectStore
	chapters ChapterStore
	logger   *logrus.Logger
}

func NewCatalogService(courses CourseStore, subjects SubjectStore, chapters ChapterStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{courses: courses, subjects: subjects, chapters: chapters, logger: logger}
}

func (s *CatalogService) CreateCourse(ctx context.Context, tenantID, userID uuid.UUID, req *models.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}

	course := &models.Course{
		TenantID:    tenantID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		IsFree:      req.IsFree,
		Published:   req.Published,
		CreatedBy:   userID,
	}
	if course.Currency == "" {
		course.Currency = "INR"
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"course_id": course.ID,
		"tenant_id": tenantID,
	}).Info("Course created")
	return course, nil
}

func (s *CatalogService) ListCourses(ctx context.Context, tenantID uuid.UUID, p models.Pagination) (*models.PagedResult[models.Course], error) {
	p.Normalize()
	courses, total, err := s.courses.List(ctx, tenantID, p)
	if err != nil {
		return nil, err
	}
	return &models.PagedResult[models.Course]{Items: courses, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, tenantID, id uuid.UUID) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "course")
	}
	return course, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateCourseRequest) (*models.Course, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.IsFree != nil {
		fields["is_free"] = *req.IsFree
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	if len(fields) == 0 {
		return nil, NewValidationError("", "no fields to update")
	}

	if err := s.courses.Update(ctx, tenantID, id, fields); err != nil {
		return nil, notFoundAs(err, "course")
	}
	return s.GetCourse(ctx, tenantID, id)
}

// DeleteCourse removes the course and its subjects. Chapters and media
// under those subjects are intentionally left alone.
func (s *CatalogService) DeleteCourse(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.courses.DeleteWithSubjects(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "course")
	}
	s.logger.WithFields(logrus.Fields{
		"course_id": id,
		"tenant_id": tenantID,
	}).Info("Course deleted with subjects")
	return nil
}

func (s *CatalogService) CreateSubject(ctx context.Context, tenantID, courseID uuid.UUID, req *models.CreateSubjectRequest) (*models.Subject, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}

	// Parent must exist in the caller's tenant.
	if _, err := s.courses.GetByID(ctx, tenantID, courseID); err != nil {
		return nil, notFoundAs(err, "course")
	}

	subject := &models.Subject{
		TenantID:    tenantID,
		CourseID:    courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		SortOrder:   req.Order,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) ListSubjects(ctx context.Context, tenantID, courseID uuid.UUID) ([]models.Subject, error) {
	if _, err := s.courses.GetByID(ctx, tenantID, courseID); err != nil {
		return nil, notFoundAs(err, "course")
	}
	return s.subjects.ListByCourse(ctx, tenantID, courseID)
}

func (s *CatalogService) GetSubject(ctx context.Context, tenantID, id uuid.UUID) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "subject")
	}
	return subject, nil
}

func (s *CatalogService) UpdateSubject(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateSubjectRequest) (*models.Subject, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}
	if len(fields) == 0 {
		return nil, NewValidationError("", "no fields to update")
	}

	if err := s.subjects.Update(ctx, tenantID, id, fields); err != nil {
		return nil, notFoundAs(err, "subject")
	}
	return s.GetSubject(ctx, tenantID, id)
}

func (s *CatalogService) DeleteSubject(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.subjects.Delete(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "subject")
	}
	return nil
}

func (s *CatalogService) CreateChapter(ctx context.Context, tenantID, subjectID uuid.UUID, req *models.CreateChapterRequest) (*models.Chapter, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}

	if _, err := s.subjects.GetByID(ctx, tenantID, subjectID); err != nil {
		return nil, notFoundAs(err, "subject")
	}

	chapter := &models.Chapter{
		TenantID:    tenantID,
		SubjectID:   subjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		SortOrder:   req.Order,
	}
	if err := s.chapters.Create(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) ListChapters(ctx context.Context, tenantID, subjectID uuid.UUID) ([]models.Chapter, error) {
	if _, err := s.subjects.GetByID(ctx, tenantID, subjectID); err != nil {
		return nil, notFoundAs(err, "subject")
	}
	return s.chapters.ListBySubject(ctx, tenantID, subjectID)
}

func (s *CatalogService) GetChapter(ctx context.Context, tenantID, id uuid.UUID) (*models.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "chapter")
	}
	return chapter, nil
}

func (s *CatalogService) UpdateChapter(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateChapterRequest) (*models.Chapter, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Order != nil {
		fields["sort_order"] = *req.Order
	}
	if len(fields) == 0 {
		return nil, NewValidationError("", "no fields to update")
	}

	if err := s.chapters.Update(ctx, tenantID, id, fields); err != nil {
		return nil, notFoundAs(err, "chapter")
	}
	return s.GetChapter(ctx, tenantID, id)
}

func (s *CatalogService) DeleteChapter(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.chapters.Delete(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "chapter")
	}
	return nil
}

// notFoundAs maps the storage-layer miss onto the service taxonomy,
// passing anything else through.
func notFoundAs(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError(resource)
	}
	return err
}
