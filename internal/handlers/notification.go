package handlers

import (
	"docspace/internal/models"
	"docspace/internal/services/notification"
	"docspace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *notification.Service
}

func NewNotificationHandler(notificationService *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the caller's recent notifications.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	notifications, err := h.notificationService.List(claims.UserID, 50)
	if err != nil {
		return utils.InternalError(c, "Failed to load notifications")
	}
	return utils.Success(c, fiber.Map{"notifications": notifications})
}

// UnreadCount returns how many notifications are unread.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	count, err := h.notificationService.UnreadCount(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to count notifications")
	}
	return utils.Success(c, fiber.Map{"unread": count})
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	notificationID, err := paramUint(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(claims.UserID, notificationID); err != nil {
		return utils.NotFound(c, "Notification not found")
	}
	return utils.Success(c, fiber.Map{"message": "Notification marked read"})
}

// MarkAllRead marks every notification for the caller as read.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	if err := h.notificationService.MarkAllRead(claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to mark notifications read")
	}
	return utils.Success(c, fiber.Map{"message": "All notifications marked read"})
}
