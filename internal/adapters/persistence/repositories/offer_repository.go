package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// offerRepository implements OfferRepository interface
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create creates a new offer
func (r *offerRepository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// GetByID gets an offer by ID with its contractor
func (r *offerRepository) GetByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).Preload("Contractor").Where("id = ?", id).First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// List lists offers with pagination, newest first
func (r *offerRepository) List(ctx context.Context, offset, limit int) ([]*models.Offer, int64, error) {
	var offers []*models.Offer
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Offer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Contractor").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// Update updates an offer
func (r *offerRepository) Update(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

// Delete deletes an offer
func (r *offerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Offer{}, id).Error
}
