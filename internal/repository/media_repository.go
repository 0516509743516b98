package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Avinash9006/InfinityPower/internal/models"
)

// VideoRepository persists video metadata. Standalone videos are rows
// with a NULL chapter_id.
type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

func (r *VideoRepository) ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("tenant_id = ? AND chapter_id IS NULL", tenantID)
	return r.list(query, p)
}

func (r *VideoRepository) ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Video, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("tenant_id = ? AND chapter_id = ?", tenantID, chapterID)
	return r.list(query, p)
}

func (r *VideoRepository) list(query *gorm.DB, p models.Pagination) ([]models.Video, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	var videos []models.Video
	err := query.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&videos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, total, nil
}

func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResourceRepository persists resource metadata.
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return &resource, nil
}

func (r *ResourceRepository) ListStandalone(ctx context.Context, tenantID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Resource{}).
		Where("tenant_id = ? AND chapter_id IS NULL", tenantID)
	return r.list(query, p)
}

func (r *ResourceRepository) ListByChapter(ctx context.Context, tenantID, chapterID uuid.UUID, p models.Pagination) ([]models.Resource, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Resource{}).
		Where("tenant_id = ? AND chapter_id = ?", tenantID, chapterID)
	return r.list(query, p)
}

func (r *ResourceRepository) list(query *gorm.DB, p models.Pagination) ([]models.Resource, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resources: %w", err)
	}

	var resources []models.Resource
	err := query.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset()).Find(&resources).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, total, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Resource{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
