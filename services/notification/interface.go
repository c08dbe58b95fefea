package notification

import (
	"context"

	"devnotify/models"
)

// NotificationService manages a user's notification feed and pushes new
// entries to their live sessions.
type NotificationService interface {
	// Notify appends the entry to the user's feed then pushes it.
	Notify(ctx context.Context, userID string, entry Entry) (*models.Notification, error)
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	// BroadcastEvent appends an event entry to every user's feed.
	BroadcastEvent(ctx context.Context, event *models.Event) (int, error)
}

// Entry is the content of a feed entry before it is stored.
type Entry struct {
	Type      models.NotificationType
	Message   string
	EventID   models.EventID
	EventName string
}
