package handlers

import (
	"errors"
	"log"

	"docspace/internal/models"
	"docspace/internal/services/chat"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	chatService *chat.Service
}

func NewMessageHandler(chatService *chat.Service) *MessageHandler {
	return &MessageHandler{chatService: chatService}
}

// SendMessage persists a message and relays it to the receiver's channel.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		ReceiverID uint   `json:"receiver_id"`
		Type       string `json:"type"`
		Content    string `json:"content"`
		FileURL    string `json:"file_url"`
		FileName   string `json:"file_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.ReceiverID == 0 {
		return utils.BadRequest(c, "Receiver is required")
	}

	msg, err := h.chatService.Send(c.Context(), claims.UserID, chat.SendInput{
		ReceiverID: input.ReceiverID,
		Type:       input.Type,
		Content:    input.Content,
		FileURL:    input.FileURL,
		FileName:   input.FileName,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			return utils.BadRequest(c, "Message content is empty")
		case errors.Is(err, chat.ErrSelfMessage):
			return utils.BadRequest(c, "Cannot send a message to yourself")
		}
		log.Printf("[Message] send failed from %d to %d: %v", claims.UserID, input.ReceiverID, err)
		return utils.InternalError(c, "Failed to send message")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message_id": msg.ID,
		"sent_at":    msg.CreatedAt,
	})
}

// GetConversation returns the history with another user, oldest first.
func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	otherID, err := paramUint(c, "userId")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	messages, err := h.chatService.History(claims.UserID, otherID)
	if err != nil {
		return utils.InternalError(c, "Failed to load conversation")
	}
	return utils.Success(c, fiber.Map{"messages": messages})
}
