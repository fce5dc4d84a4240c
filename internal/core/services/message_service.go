package services

import (
	"context"
	"errors"
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"

	"gorm.io/gorm"
)

// MessageService handles conversation and message business logic
type MessageService struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
}

// NewMessageService creates a new message service
func NewMessageService(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
) *MessageService {
	return &MessageService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

// CreateConversationInput represents conversation creation input
type CreateConversationInput struct {
	RecipientID uint  `json:"recipient_id" validate:"required"`
	OfferID     *uint `json:"offer_id"`
}

// SendMessageInput represents message creation input
type SendMessageInput struct {
	Content     string   `json:"content" validate:"required"`
	Attachments []string `json:"-"`
}

// CreateConversation starts a conversation between the requester and a
// recipient, optionally about an offer
func (s *MessageService) CreateConversation(ctx context.Context, requesterID uint, input *CreateConversationInput) (*models.Conversation, error) {
	if input.RecipientID == requesterID {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	conversation := &models.Conversation{OfferID: input.OfferID}
	if err := s.conversationRepo.Create(ctx, conversation, []uint{requesterID, input.RecipientID}); err != nil {
		return nil, err
	}

	log.Printf("✅ Conversation created: %d (%d <-> %d)", conversation.ID, requesterID, input.RecipientID)
	return s.conversationRepo.GetByID(ctx, conversation.ID)
}

// ListConversations lists the requester's conversations with unread counts
func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]*models.ConversationResponse, error) {
	conversations, err := s.conversationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		unread, err := s.messageRepo.UnreadCount(ctx, conversation.ID, userID)
		if err != nil {
			return nil, err
		}

		resp := &models.ConversationResponse{
			ID:          conversation.ID,
			OfferID:     conversation.OfferID,
			UnreadCount: unread,
			UpdatedAt:   conversation.UpdatedAt,
		}
		if conversation.Offer != nil {
			resp.OfferTitle = conversation.Offer.Title
		}
		for _, p := range conversation.Participants {
			if p.User != nil {
				resp.Participants = append(resp.Participants, p.User.ToResponse())
			}
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// ListMessages lists messages in a conversation. Only a participant may
// read them.
func (s *MessageService) ListMessages(ctx context.Context, conversationID, requesterID uint, offset, limit int) ([]*models.MessageResponse, int64, error) {
	if err := s.requireParticipant(ctx, conversationID, requesterID); err != nil {
		return nil, 0, err
	}

	messages, total, err := s.messageRepo.ListByConversation(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, message.ToResponse())
	}
	return responses, total, nil
}

// SendMessage posts a message into a conversation. Only a participant
// may post.
func (s *MessageService) SendMessage(ctx context.Context, conversationID, senderID uint, input *SendMessageInput) (*models.MessageResponse, error) {
	if err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        input.Content,
		Attachments:    input.Attachments,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message.ToResponse(), nil
}

// MarkAsRead marks a message as read. Only a participant in the
// message's conversation may mark it, and senders cannot mark their own.
func (s *MessageService) MarkAsRead(ctx context.Context, messageID, requesterID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.requireParticipant(ctx, message.ConversationID, requesterID); err != nil {
		return err
	}
	if message.SenderID == requesterID {
		return domain.ErrForbidden
	}

	return s.messageRepo.MarkAsRead(ctx, messageID)
}

// UnreadTotal counts the requester's unread messages across all
// conversations
func (s *MessageService) UnreadTotal(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnreadTotal(ctx, userID)
}

// requireParticipant resolves the conversation and rejects non-members
func (s *MessageService) requireParticipant(ctx context.Context, conversationID, userID uint) error {
	if _, err := s.conversationRepo.GetByID(ctx, conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	ok, err := s.conversationRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotParticipant
	}
	return nil
}
