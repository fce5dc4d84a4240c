package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// conversationRepository implements ConversationRepository interface
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create creates a conversation and its participant rows as one unit
func (r *conversationRepository) Create(ctx context.Context, conversation *models.Conversation, participantIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, userID := range participantIDs {
			p := models.ConversationParticipant{
				ConversationID: conversation.ID,
				UserID:         userID,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID gets a conversation with participants and offer
func (r *conversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Offer").
		Where("id = ?", id).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListByUser lists conversations the user participates in, most recently
// active first
func (r *conversationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Offer").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// IsParticipant checks conversation membership
func (r *conversationRepository) IsParticipant(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a message and bumps the conversation's updated_at
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", tx.NowFunc()).Error
	})
}

// GetByID gets a message by ID
func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByConversation lists messages in a conversation with sender info,
// oldest first, paginated
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uint, offset, limit int) ([]*models.Message, int64, error) {
	var messages []*models.Message
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkAsRead marks a message as read
func (r *messageRepository) MarkAsRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// UnreadCount counts unread messages from other senders in a conversation
func (r *messageRepository) UnreadCount(ctx context.Context, conversationID, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", conversationID, userID, false).
		Count(&count).Error
	return count, err
}

// UnreadTotal counts unread messages across every conversation the user
// participates in
func (r *messageRepository) UnreadTotal(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id").
		Where("cp.user_id = ? AND messages.sender_id != ? AND messages.is_read = ?", userID, userID, false).
		Count(&count).Error
	return count, err
}
