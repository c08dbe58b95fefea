package notificationRepo

import (
	"context"

	"devnotify/models"
)

type NotificationRepository interface {
	Append(ctx context.Context, n *models.Notification) error
	AppendMany(ctx context.Context, ns []*models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	// MarkRead sets isRead on the user's notification; already-read entries are returned unchanged.
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
}
