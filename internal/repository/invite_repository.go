package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Avinash9006/InfinityPower/internal/models"
)

// InviteRepository persists single-use invite tokens.
type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *models.InviteToken) error {
	if err := r.db.WithContext(ctx).Create(invite).Error; err != nil {
		return fmt.Errorf("failed to create invite token: %w", err)
	}
	return nil
}

// Consume marks the token used in a single conditional update, so two
// concurrent registrations with the same token cannot both succeed.
// Returns the invite on success; ErrNotFound for unknown, expired or
// already-used tokens.
func (r *InviteRepository) Consume(ctx context.Context, token string) (*models.InviteToken, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.InviteToken{}).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now).
		Update("used_at", now)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to consume invite token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var invite models.InviteToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load invite token: %w", err)
	}
	return &invite, nil
}
