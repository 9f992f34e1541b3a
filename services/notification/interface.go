package notification

import (
	"context"

	notificationRepo "pristine/database/repository/notification"
	"pristine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService records in-app notifications for users.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

// NotifyUser stores a notification record for the user's dashboard.
func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	n := &models.Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	if err := s.Repo.Create(n); err != nil {
		return err
	}
	s.Logger.Debug("notification recorded",
		zap.String("user", userID),
		zap.String("title", title))
	return nil
}

// ListForUser retrieves a user's notifications, newest first.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Repo.GetByUser(userID)
}

// MarkRead flags a notification as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(id)
}
