package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/pagination"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/upload"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles conversation and message endpoints
type MessageHandler struct {
	messageService *services.MessageService
	uploads        *upload.Store
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService, uploads *upload.Store) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		uploads:        uploads,
	}
}

// CreateConversation handles conversation creation
// @Summary Start conversation
// @Description Start a conversation with another user, optionally about an offer
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateConversationInput true "Conversation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /conversations [post]
func (h *MessageHandler) CreateConversation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input services.CreateConversationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	conversation, err := h.messageService.CreateConversation(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Cannot start a conversation with yourself")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Recipient not found")
		default:
			return response.InternalServerError(c, "Failed to create conversation")
		}
	}

	return response.Created(c, "Conversation created", conversation)
}

// ListConversations handles listing the requester's conversations
// @Summary List conversations
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /conversations [get]
func (h *MessageHandler) ListConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	conversations, err := h.messageService.ListConversations(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list conversations")
	}

	return response.Success(c, "Conversations retrieved", conversations)
}

// ListMessages handles listing messages in a conversation
// @Summary List messages
// @Description List messages in a conversation the requester participates in
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /conversations/{id}/messages [get]
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid conversation ID")
	}
	userID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)

	messages, total, err := h.messageService.ListMessages(c.Context(), uint(id), userID, params.Offset, params.Limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Conversation not found")
		case errors.Is(err, domain.ErrNotParticipant):
			return response.Forbidden(c, "You are not a participant in this conversation")
		default:
			return response.InternalServerError(c, "Failed to list messages")
		}
	}

	return response.Success(c, "Messages retrieved", pagination.NewResponse(messages, params, total))
}

// SendMessage handles posting a message
// @Summary Send message
// @Description Post a message with optional image attachments
// @Tags Messages
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /conversations/{id}/messages [post]
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid conversation ID")
	}
	userID := c.Locals("userID").(uint)

	var input services.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	attachments, err := h.uploads.SaveImages(c, "attachments", upload.KindAttachments)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.Attachments = attachments

	message, err := h.messageService.SendMessage(c.Context(), uint(id), userID, &input)
	if err != nil {
		h.uploads.RemoveAll(attachments)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Conversation not found")
		case errors.Is(err, domain.ErrNotParticipant):
			return response.Forbidden(c, "You are not a participant in this conversation")
		default:
			return response.InternalServerError(c, "Failed to send message")
		}
	}

	return response.Created(c, "Message sent", message)
}

// MarkAsRead handles marking a message as read
// @Summary Mark message as read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages/{id}/read [put]
func (h *MessageHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid message ID")
	}
	userID := c.Locals("userID").(uint)

	if err := h.messageService.MarkAsRead(c.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Message not found")
		case errors.Is(err, domain.ErrNotParticipant):
			return response.Forbidden(c, "You are not a participant in this conversation")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You cannot mark your own message as read")
		default:
			return response.InternalServerError(c, "Failed to mark message as read")
		}
	}

	return response.Success(c, "Message marked as read", nil)
}

// UnreadTotal handles counting the requester's unread messages
// @Summary Count unread messages
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /messages/unread-count [get]
func (h *MessageHandler) UnreadTotal(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	total, err := h.messageService.UnreadTotal(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count unread messages")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{"unread": total})
}
