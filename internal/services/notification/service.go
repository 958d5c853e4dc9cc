package notification

import (
	"log"

	"docspace/internal/models"
	"docspace/internal/repositories"
)

// Service manages persisted per-user notifications.
type Service struct {
	repo repositories.NotificationRepository
}

// NewService creates a new notification service.
func NewService(repo repositories.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// Notify persists a notification row for the user. Failures are logged, not
// returned; a lost notification must never fail the action that caused it.
func (s *Service) Notify(userID uint, kind, title, body, link string) {
	n := &models.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
		Link:   link,
	}
	if err := s.repo.Create(n); err != nil {
		log.Printf("[Notification] failed to create notification for user %d: %v", userID, err)
	}
}

func (s *Service) List(userID uint, limit int) ([]models.Notification, error) {
	return s.repo.ListByUser(userID, limit)
}

func (s *Service) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *Service) MarkRead(userID, notificationID uint) error {
	return s.repo.MarkRead(userID, notificationID)
}

func (s *Service) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}
