package services

import (
	"context"
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/upload"
)

// FeedService handles feed business logic
type FeedService struct {
	feedRepo repositories.FeedRepository
	uploads  *upload.Store
}

// NewFeedService creates a new feed service
func NewFeedService(feedRepo repositories.FeedRepository, uploads *upload.Store) *FeedService {
	return &FeedService{
		feedRepo: feedRepo,
		uploads:  uploads,
	}
}

// CreateFeedPostInput represents feed post creation input
type CreateFeedPostInput struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"-"`
}

// List lists feed posts with pagination, newest first
func (s *FeedService) List(ctx context.Context, offset, limit int) ([]*models.FeedPostResponse, int64, error) {
	posts, total, err := s.feedRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.FeedPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, post.ToResponse())
	}
	return responses, total, nil
}

// Create creates a feed post owned by the requester
func (s *FeedService) Create(ctx context.Context, userID uint, input *CreateFeedPostInput) (*models.FeedPostResponse, error) {
	post := &models.FeedPost{
		UserID:  userID,
		Content: input.Content,
		Images:  input.Images,
	}

	if err := s.feedRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post.ToResponse(), nil
}

// Delete deletes a feed post. Only the author (or an admin) may delete it.
func (s *FeedService) Delete(ctx context.Context, id, requesterID uint, role domain.Role) error {
	post, err := loadOwned(ctx, s.feedRepo.GetByID, ownerOfFeedPost, id, requesterID, role)
	if err != nil {
		return err
	}

	if err := s.feedRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.uploads.RemoveAll(post.Images)
	log.Printf("✅ Feed post deleted: %d", post.ID)
	return nil
}

func ownerOfFeedPost(p *models.FeedPost) uint {
	return p.UserID
}
