package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email (case-sensitive exact match)
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// List lists users with pagination, newest first
func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// DeleteCascade removes the user and all dependent records as one atomic
// unit. Any failure rolls the whole operation back; upload paths are
// collected before commit so the caller can unlink files afterwards.
func (r *userRepository) DeleteCascade(ctx context.Context, userID uint) ([]string, error) {
	var filePaths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Collect upload paths referenced by rows about to disappear
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.ProfileImage != "" {
			filePaths = append(filePaths, user.ProfileImage)
		}

		var offers []models.Offer
		if err := tx.Where("contractor_id = ?", userID).Find(&offers).Error; err != nil {
			return err
		}
		for _, o := range offers {
			filePaths = append(filePaths, o.Images...)
		}

		var portfolioImages []models.PortfolioImage
		if err := tx.
			Joins("JOIN portfolio_projects ON portfolio_projects.id = project_images.project_id").
			Where("portfolio_projects.contractor_id = ?", userID).
			Find(&portfolioImages).Error; err != nil {
			return err
		}
		for _, img := range portfolioImages {
			filePaths = append(filePaths, img.ImageURL)
		}

		var posts []models.FeedPost
		if err := tx.Where("user_id = ?", userID).Find(&posts).Error; err != nil {
			return err
		}
		for _, p := range posts {
			filePaths = append(filePaths, p.Images...)
		}

		// Conversations the user takes part in disappear entirely,
		// peers' messages and attachments included
		var conversationIDs []uint
		if err := tx.Model(&models.ConversationParticipant{}).
			Where("user_id = ?", userID).
			Pluck("conversation_id", &conversationIDs).Error; err != nil {
			return err
		}

		var messages []models.Message
		if err := tx.Where("conversation_id IN ? OR sender_id = ?", conversationIDs, userID).
			Find(&messages).Error; err != nil {
			return err
		}
		for _, m := range messages {
			filePaths = append(filePaths, m.Attachments...)
		}

		// Ordered removal: dependents before owners
		if err := tx.Where("project_id IN (?)",
			tx.Model(&models.Project{}).Select("id").Where("client_id = ?", userID),
		).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", userID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id IN (?)",
			tx.Model(&models.PortfolioProject{}).Select("id").Where("contractor_id = ?", userID),
		).Delete(&models.PortfolioImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contractor_id = ?", userID).Delete(&models.PortfolioProject{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contractor_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contractor_id = ?", userID).Delete(&models.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id IN ? OR sender_id = ?", conversationIDs, userID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if len(conversationIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", conversationIDs).
				Delete(&models.ConversationParticipant{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Conversation{}, conversationIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.FeedPost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})

	if err != nil {
		return nil, err
	}
	return filePaths, nil
}
