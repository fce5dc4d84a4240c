package services

import (
	"context"
	"errors"
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/upload"

	"gorm.io/gorm"
)

// OfferService handles offer business logic
type OfferService struct {
	offerRepo repositories.OfferRepository
	uploads   *upload.Store
}

// NewOfferService creates a new offer service
func NewOfferService(offerRepo repositories.OfferRepository, uploads *upload.Store) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		uploads:   uploads,
	}
}

// CreateOfferInput represents offer creation input
type CreateOfferInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required,max=200"`
	Rate        string   `json:"rate" validate:"required,max=50"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Images      []string `json:"-"`
}

// UpdateOfferInput represents offer update input
type UpdateOfferInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location"`
	Rate          *string  `json:"rate"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Status        *string  `json:"status"`
	NewImages     []string `json:"-"`
	RemovedImages []string `json:"removed_images"`
}

// List lists offers with pagination
func (s *OfferService) List(ctx context.Context, offset, limit int) ([]*models.OfferResponse, int64, error) {
	offers, total, err := s.offerRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		responses = append(responses, offer.ToResponse())
	}
	return responses, total, nil
}

// Get gets a single offer
func (s *OfferService) Get(ctx context.Context, id uint) (*models.OfferResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return offer.ToResponse(), nil
}

// Create creates an offer owned by the requesting contractor
func (s *OfferService) Create(ctx context.Context, contractorID uint, input *CreateOfferInput) (*models.OfferResponse, error) {
	offer := &models.Offer{
		ContractorID: contractorID,
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Rate:         input.Rate,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Images:       input.Images,
		Status:       domain.OfferStatusActive,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	log.Printf("✅ Offer created: %d by contractor %d", offer.ID, contractorID)
	return offer.ToResponse(), nil
}

// Update updates an offer. Only the owning contractor (or an admin) may
// mutate it.
func (s *OfferService) Update(ctx context.Context, id, requesterID uint, role domain.Role, input *UpdateOfferInput) (*models.OfferResponse, error) {
	offer, err := loadOwned(ctx, s.offerRepo.GetByID, ownerOfOffer, id, requesterID, role)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if input.Location != nil {
		offer.Location = *input.Location
	}
	if input.Rate != nil {
		offer.Rate = *input.Rate
	}
	if input.Latitude != nil {
		offer.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		offer.Longitude = input.Longitude
	}
	if input.Status != nil {
		switch *input.Status {
		case domain.OfferStatusActive, domain.OfferStatusCompleted, domain.OfferStatusCancelled:
			offer.Status = *input.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	offer.Images = append(offer.Images, input.NewImages...)
	if len(input.RemovedImages) > 0 {
		removed := make(map[string]bool, len(input.RemovedImages))
		for _, img := range input.RemovedImages {
			removed[img] = true
		}
		kept := offer.Images[:0]
		for _, img := range offer.Images {
			if !removed[img] {
				kept = append(kept, img)
			}
		}
		offer.Images = kept
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}

	// Unlink removed image files only after the update has landed
	s.uploads.RemoveAll(input.RemovedImages)

	return offer.ToResponse(), nil
}

// Delete deletes an offer. Only the owning contractor (or an admin) may
// delete it.
func (s *OfferService) Delete(ctx context.Context, id, requesterID uint, role domain.Role) error {
	offer, err := loadOwned(ctx, s.offerRepo.GetByID, ownerOfOffer, id, requesterID, role)
	if err != nil {
		return err
	}

	if err := s.offerRepo.Delete(ctx, offer.ID); err != nil {
		return err
	}

	s.uploads.RemoveAll(offer.Images)
	log.Printf("✅ Offer deleted: %d", offer.ID)
	return nil
}

func ownerOfOffer(o *models.Offer) uint {
	return o.ContractorID
}
