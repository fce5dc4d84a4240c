package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	// DeleteCascade removes the user and every dependent record (offers,
	// projects and their applications, portfolio, applications, messages,
	// conversation memberships, feed posts) in a single transaction. It
	// returns the upload paths that referenced the deleted rows so the
	// caller can clean the files up after commit.
	DeleteCascade(ctx context.Context, userID uint) ([]string, error)
}

// OfferRepository defines offer repository interface
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uint) (*models.Offer, error)
	List(ctx context.Context, offset, limit int) ([]*models.Offer, int64, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id uint) error
}

// ProjectRepository defines project repository interface
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListByClient(ctx context.Context, clientID uint) ([]*models.Project, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Project, error)
	ListAll(ctx context.Context) ([]*models.Project, error)
	CountApplications(ctx context.Context, projectID uint) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

// ApplicationRepository defines application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Exists(ctx context.Context, projectID, contractorID uint) (bool, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Application, error)
	ListByContractor(ctx context.Context, contractorID uint) ([]*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
}

// PortfolioRepository defines portfolio repository interface
type PortfolioRepository interface {
	Create(ctx context.Context, project *models.PortfolioProject, imageURLs []string) error
	GetByID(ctx context.Context, id uint) (*models.PortfolioProject, error)
	ListByContractor(ctx context.Context, contractorID uint) ([]*models.PortfolioProject, error)
	Update(ctx context.Context, project *models.PortfolioProject) error
	AddImages(ctx context.Context, projectID uint, imageURLs []string) error
	// Delete removes the portfolio project and its image rows, returning
	// the image URLs for best-effort file cleanup.
	Delete(ctx context.Context, id uint) ([]string, error)
}

// ConversationRepository defines conversation repository interface
type ConversationRepository interface {
	Create(ctx context.Context, conversation *models.Conversation, participantIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error)
}

// MessageRepository defines message repository interface
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByConversation(ctx context.Context, conversationID uint, offset, limit int) ([]*models.Message, int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	UnreadCount(ctx context.Context, conversationID, userID uint) (int64, error)
	UnreadTotal(ctx context.Context, userID uint) (int64, error)
}

// FeedRepository defines feed repository interface
type FeedRepository interface {
	Create(ctx context.Context, post *models.FeedPost) error
	GetByID(ctx context.Context, id uint) (*models.FeedPost, error)
	List(ctx context.Context, offset, limit int) ([]*models.FeedPost, int64, error)
	Delete(ctx context.Context, id uint) error
}
