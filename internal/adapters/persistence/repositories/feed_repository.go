package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// feedRepository implements FeedRepository interface
type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// Create creates a feed post
func (r *feedRepository) Create(ctx context.Context, post *models.FeedPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID gets a feed post by ID
func (r *feedRepository) GetByID(ctx context.Context, id uint) (*models.FeedPost, error) {
	var post models.FeedPost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List lists feed posts with author info, newest first
func (r *feedRepository) List(ctx context.Context, offset, limit int) ([]*models.FeedPost, int64, error) {
	var posts []*models.FeedPost
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.FeedPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Delete deletes a feed post
func (r *feedRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FeedPost{}, id).Error
}
