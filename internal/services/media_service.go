package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/cache"
	"github.com/Avinash9006/InfinityPower/internal/events"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/storage"
)

// cacheMargin keeps cached URLs from outliving their signature.
const cacheMargin = 5 * time.Minute

// VideoMeta carries the non-file fields of a video upload.
type VideoMeta struct {
	Title       string
	Description string
	CourseID    string
	ChapterID   string
	Level       string
	Language    string
}

// ResourceMeta carries the non-file fields of a resource upload.
type ResourceMeta struct {
	Title     string
	Category  string
	CourseID  string
	ChapterID string
}

// MediaService registers videos and resources, streams uploads to object
// storage and serves reads through freshly signed URLs. Stored keys are
// opaque and never leave the service unsigned.
type MediaService struct {
	videos    VideoStore
	resources ResourceStore
	chapters  ChapterStore
	storage   storage.Provider
	urls      cache.URLCache
	publisher EventPublisher
	logger    *logrus.Logger
	signTTL   time.Duration
}

func NewMediaService(
	videos VideoStore,
	resources ResourceStore,
	chapters ChapterStore,
	store storage.Provider,
	urls cache.URLCache,
	publisher EventPublisher,
	logger *logrus.Logger,
	signTTL time.Duration,
) *MediaService {
	return &MediaService{
		videos:    videos,
		resources: resources,
		chapters:  chapters,
		storage:   store,
		urls:      urls,
		publisher: publisher,
		logger:    logger,
		signTTL:   signTTL,
	}
}

// UploadVideo validates and stores a video file, then persists metadata.
// The MIME check runs before any storage call; a rejected file never
// touches the bucket. A metadata insert failure rolls the object back.
func (s *MediaService) UploadVideo(ctx context.Context, tenantID, userID uuid.UUID, file *FileUpload, meta VideoMeta, thumbnail *FileUpload) (*models.Video, error) {
	if file == nil {
		return nil, NewValidationError("video", "video file is required")
	}
	if !strings.HasPrefix(file.ContentType, "video/") {
		return nil, NewValidationError("video", "file must be a video")
	}
	if strings.TrimSpace(meta.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if thumbnail != nil && !strings.HasPrefix(thumbnail.ContentType, "image/") {
		return nil, NewValidationError("thumbnail", "thumbnail must be an image")
	}
	level := defaultString(meta.Level, models.VideoLevelFree)
	if !models.ValidVideoLevel(level) {
		return nil, NewValidationError("level", "invalid video level")
	}

	courseID, chapterID, err := s.resolveAttachment(ctx, tenantID, meta.CourseID, meta.ChapterID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/videos/%s%s", tenantID, uuid.New(), path.Ext(file.FileName))
	if err := s.storage.Upload(ctx, key, file.Content, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	video := &models.Video{
		TenantID:    tenantID,
		CourseID:    courseID,
		ChapterID:   chapterID,
		Title:       strings.TrimSpace(meta.Title),
		Description: meta.Description,
		Type:        models.MediaTypeUpload,
		StorageKey:  key,
		MimeType:    file.ContentType,
		Level:       level,
		Language:    defaultString(meta.Language, "Hindi"),
		CreatedBy:   userID,
	}

	if thumbnail != nil {
		thumbKey := fmt.Sprintf("tenants/%s/thumbnails/%s%s", tenantID, uuid.New(), path.Ext(thumbnail.FileName))
		if err := s.storage.Upload(ctx, thumbKey, thumbnail.Content, thumbnail.ContentType); err != nil {
			s.rollbackObject(ctx, key)
			return nil, fmt.Errorf("failed to store thumbnail: %w", err)
		}
		video.ThumbnailKey = thumbKey
	}

	if err := s.videos.Create(ctx, video); err != nil {
		s.rollbackObject(ctx, key)
		if video.ThumbnailKey != "" {
			s.rollbackObject(ctx, video.ThumbnailKey)
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"video_id":  video.ID,
		"tenant_id": tenantID,
		"mime_type": video.MimeType,
	}).Info("Video uploaded")

	s.publisher.PublishMediaUploaded(events.MediaEvent{
		MediaID:  video.ID.String(),
		TenantID: tenantID.String(),
		Kind:     "video",
		Type:     video.Type,
	})

	return s.presentVideo(ctx, video)
}

// AddVideoLink registers an externally hosted video. No storage call.
func (s *MediaService) AddVideoLink(ctx context.Context, tenantID, userID uuid.UUID, req *models.AddVideoLinkRequest) (*models.Video, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, NewValidationError("url", "url is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}
	level := defaultString(req.Level, models.VideoLevelFree)
	if !models.ValidVideoLevel(level) {
		return nil, NewValidationError("level", "invalid video level")
	}

	courseID, chapterID, err := s.resolveAttachment(ctx, tenantID, req.CourseID, req.ChapterID)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		TenantID:    tenantID,
		CourseID:    courseID,
		ChapterID:   chapterID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        models.MediaTypeLink,
		URL:         req.URL,
		Level:       level,
		Language:    defaultString(req.Language, "Hindi"),
		CreatedBy:   userID,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	s.publisher.PublishMediaUploaded(events.MediaEvent{
		MediaID:  video.ID.String(),
		TenantID: tenantID.String(),
		Kind:     "video",
		Type:     video.Type,
	})
	return video, nil
}

// ListVideos returns standalone videos (chapter reference null).
func (s *MediaService) ListVideos(ctx context.Context, tenantID uuid.UUID, p models.Pagination) (*models.PagedResult[models.Video], error) {
	p.Normalize()
	videos, total, err := s.videos.ListStandalone(ctx, tenantID, p)
	if err != nil {
		return nil, err
	}
	if err := s.presentVideos(ctx, videos); err != nil {
		return nil, err
	}
	return &models.PagedResult[models.Video]{Items: videos, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *MediaService) ListChapterVideos(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) (*models.PagedResult[models.Video], error) {
	p.Normalize()
	videos, total, err := s.videos.ListByChapter(ctx, tenantID, chapterID, p)
	if err != nil {
		return nil, err
	}
	if err := s.presentVideos(ctx, videos); err != nil {
		return nil, err
	}
	return &models.PagedResult[models.Video]{Items: videos, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *MediaService) GetVideo(ctx context.Context, tenantID, id uuid.UUID) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "video")
	}
	return s.presentVideo(ctx, video)
}

// UpdateVideo applies a partial update. When a replacement file arrives
// the old object is destroyed first (only if the record was an upload),
// then the new one stored; there is no compensation if the new upload
// fails after the destroy.
func (s *MediaService) UpdateVideo(ctx context.Context, tenantID, id uuid.UUID, req *models.UpdateVideoRequest, newFile *FileUpload) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "video")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		video.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.Level != nil {
		if !models.ValidVideoLevel(*req.Level) {
			return nil, NewValidationError("level", "invalid video level")
		}
		video.Level = *req.Level
	}
	if req.Language != nil {
		video.Language = *req.Language
	}
	if req.ChapterID != nil {
		if *req.ChapterID == "" {
			video.ChapterID = nil
		} else {
			chapterID, parseErr := uuid.Parse(*req.ChapterID)
			if parseErr != nil {
				return nil, NewValidationError("chapterId", "invalid chapter id")
			}
			if _, err := s.chapters.GetByID(ctx, tenantID, chapterID); err != nil {
				return nil, notFoundAs(err, "chapter")
			}
			video.ChapterID = &chapterID
		}
	}

	if newFile != nil {
		if !strings.HasPrefix(newFile.ContentType, "video/") {
			return nil, NewValidationError("video", "file must be a video")
		}
		if video.Type == models.MediaTypeUpload && video.StorageKey != "" {
			if err := s.storage.Delete(ctx, video.StorageKey); err != nil {
				s.logger.WithError(err).WithField("key", video.StorageKey).Warn("Failed to destroy old video object")
			}
		}
		key := fmt.Sprintf("tenants/%s/videos/%s%s", tenantID, uuid.New(), path.Ext(newFile.FileName))
		if err := s.storage.Upload(ctx, key, newFile.Content, newFile.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store video: %w", err)
		}
		video.Type = models.MediaTypeUpload
		video.StorageKey = key
		video.URL = ""
		video.MimeType = newFile.ContentType
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, err
	}
	return s.presentVideo(ctx, video)
}

// DeleteVideo removes metadata after attempting storage cleanup for
// uploads. A failed destroy is logged and the delete proceeds; the
// orphaned object is retried by ops tooling, not the request path.
func (s *MediaService) DeleteVideo(ctx context.Context, tenantID, id uuid.UUID) error {
	video, err := s.videos.GetByID(ctx, tenantID, id)
	if err != nil {
		return notFoundAs(err, "video")
	}

	if video.Type == models.MediaTypeUpload && video.StorageKey != "" {
		if err := s.storage.Delete(ctx, video.StorageKey); err != nil {
			s.logger.WithError(err).WithField("key", video.StorageKey).Warn("Failed to destroy video object")
		}
		if video.ThumbnailKey != "" {
			if err := s.storage.Delete(ctx, video.ThumbnailKey); err != nil {
				s.logger.WithError(err).WithField("key", video.ThumbnailKey).Warn("Failed to destroy thumbnail object")
			}
		}
	}

	if err := s.videos.Delete(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "video")
	}

	s.publisher.PublishMediaDeleted(events.MediaEvent{
		MediaID:  id.String(),
		TenantID: tenantID.String(),
		Kind:     "video",
		Type:     video.Type,
	})
	return nil
}

// UploadResource validates and stores a resource file.
func (s *MediaService) UploadResource(ctx context.Context, tenantID, userID uuid.UUID, file *FileUpload, meta ResourceMeta) (*models.Resource, error) {
	if file == nil {
		return nil, NewValidationError("file", "file is required")
	}
	if strings.TrimSpace(meta.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}
	category := defaultString(meta.Category, models.ResourceCategoryOther)
	if !models.ValidResourceCategory(category) {
		return nil, NewValidationError("category", "invalid category")
	}

	courseID, chapterID, err := s.resolveAttachment(ctx, tenantID, meta.CourseID, meta.ChapterID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/resources/%s%s", tenantID, uuid.New(), path.Ext(file.FileName))
	if err := s.storage.Upload(ctx, key, file.Content, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store resource: %w", err)
	}

	resource := &models.Resource{
		TenantID:   tenantID,
		CourseID:   courseID,
		ChapterID:  chapterID,
		Title:      strings.TrimSpace(meta.Title),
		Category:   category,
		Type:       models.MediaTypeUpload,
		StorageKey: key,
		MimeType:   file.ContentType,
		CreatedBy:  userID,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		s.rollbackObject(ctx, key)
		return nil, err
	}

	s.publisher.PublishMediaUploaded(events.MediaEvent{
		MediaID:  resource.ID.String(),
		TenantID: tenantID.String(),
		Kind:     "resource",
		Type:     resource.Type,
	})

	return s.presentResource(ctx, resource)
}

func (s *MediaService) AddResourceLink(ctx context.Context, tenantID, userID uuid.UUID, req *models.AddResourceLinkRequest) (*models.Resource, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, NewValidationError("url", "url is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "title is required")
	}
	category := defaultString(req.Category, models.ResourceCategoryOther)
	if !models.ValidResourceCategory(category) {
		return nil, NewValidationError("category", "invalid category")
	}

	courseID, chapterID, err := s.resolveAttachment(ctx, tenantID, req.CourseID, req.ChapterID)
	if err != nil {
		return nil, err
	}

	resource := &models.Resource{
		TenantID:  tenantID,
		CourseID:  courseID,
		ChapterID: chapterID,
		Title:     strings.TrimSpace(req.Title),
		Category:  category,
		Type:      models.MediaTypeLink,
		URL:       req.URL,
		CreatedBy: userID,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *MediaService) ListResources(ctx context.Context, tenantID uuid.UUID, p models.Pagination) (*models.PagedResult[models.Resource], error) {
	p.Normalize()
	resources, total, err := s.resources.ListStandalone(ctx, tenantID, p)
	if err != nil {
		return nil, err
	}
	if err := s.presentResources(ctx, resources); err != nil {
		return nil, err
	}
	return &models.PagedResult[models.Resource]{Items: resources, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *MediaService) ListChapterResources(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) (*models.PagedResult[models.Resource], error) {
	p.Normalize()
	resources, total, err := s.resources.ListByChapter(ctx, tenantID, chapterID, p)
	if err != nil {
		return nil, err
	}
	if err := s.presentResources(ctx, resources); err != nil {
		return nil, err
	}
	return &models.PagedResult[models.Resource]{Items: resources, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *MediaService) GetResource(ctx context.Context, tenantID, id uuid.UUID) (*models.Resource, error) {
	resource, err := s.resources.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFoundAs(err, "resource")
	}
	return s.presentResource(ctx, resource)
}

func (s *MediaService) DeleteResource(ctx context.Context, tenantID, id uuid.UUID) error {
	resource, err := s.resources.GetByID(ctx, tenantID, id)
	if err != nil {
		return notFoundAs(err, "resource")
	}

	if resource.Type == models.MediaTypeUpload && resource.StorageKey != "" {
		if err := s.storage.Delete(ctx, resource.StorageKey); err != nil {
			s.logger.WithError(err).WithField("key", resource.StorageKey).Warn("Failed to destroy resource object")
		}
	}

	if err := s.resources.Delete(ctx, tenantID, id); err != nil {
		return notFoundAs(err, "resource")
	}

	s.publisher.PublishMediaDeleted(events.MediaEvent{
		MediaID:  id.String(),
		TenantID: tenantID.String(),
		Kind:     "resource",
		Type:     resource.Type,
	})
	return nil
}

// resolveAttachment parses optional course/chapter references and
// verifies a chapter attachment belongs to the caller's tenant.
func (s *MediaService) resolveAttachment(ctx context.Context, tenantID uuid.UUID, courseID, chapterID string) (*uuid.UUID, *uuid.UUID, error) {
	var course, chapter *uuid.UUID

	if courseID != "" {
		parsed, err := uuid.Parse(courseID)
		if err != nil {
			return nil, nil, NewValidationError("courseId", "invalid course id")
		}
		course = &parsed
	}
	if chapterID != "" {
		parsed, err := uuid.Parse(chapterID)
		if err != nil {
			return nil, nil, NewValidationError("chapterId", "invalid chapter id")
		}
		if _, err := s.chapters.GetByID(ctx, tenantID, parsed); err != nil {
			return nil, nil, notFoundAs(err, "chapter")
		}
		chapter = &parsed
	}
	return course, chapter, nil
}

// presentVideo swaps the opaque storage key for a fresh signed URL.
// Signed URLs are cached a little shorter than their validity so cache
// hits are always still live.
func (s *MediaService) presentVideo(ctx context.Context, video *models.Video) (*models.Video, error) {
	if video.Type != models.MediaTypeUpload {
		return video, nil
	}

	signed, err := s.signedURL(ctx, video.StorageKey)
	if err != nil {
		return nil, err
	}
	video.URL = signed

	if video.ThumbnailKey != "" {
		thumb, err := s.signedURL(ctx, video.ThumbnailKey)
		if err != nil {
			return nil, err
		}
		video.ThumbnailURL = thumb
	} else {
		// No stored thumbnail: clients take the poster frame from the
		// first second of the video via a media fragment.
		video.ThumbnailURL = signed + "#t=1"
	}
	return video, nil
}

func (s *MediaService) presentVideos(ctx context.Context, videos []models.Video) error {
	for i := range videos {
		if _, err := s.presentVideo(ctx, &videos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MediaService) presentResource(ctx context.Context, resource *models.Resource) (*models.Resource, error) {
	if resource.Type != models.MediaTypeUpload {
		return resource, nil
	}
	signed, err := s.signedURL(ctx, resource.StorageKey)
	if err != nil {
		return nil, err
	}
	resource.URL = signed
	return resource, nil
}

func (s *MediaService) presentResources(ctx context.Context, resources []models.Resource) error {
	for i := range resources {
		if _, err := s.presentResource(ctx, &resources[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MediaService) signedURL(ctx context.Context, key string) (string, error) {
	if url, ok := s.urls.Get(ctx, key); ok {
		return url, nil
	}
	url, err := s.storage.SignedURL(ctx, key, s.signTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign url: %w", err)
	}
	ttl := s.signTTL - cacheMargin
	if ttl > 0 {
		s.urls.Set(ctx, key, url, ttl)
	}
	return url, nil
}

// rollbackObject is the compensating delete after a failed metadata
// insert.
func (s *MediaService) rollbackObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to roll back stored object")
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
