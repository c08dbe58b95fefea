package reminder

import (
	"context"
	"sort"

	"devnotify/models"
	"devnotify/services/notification"
)

// ReminderService is the reminder lifecycle API used by the HTTP layer.
type ReminderService interface {
	// Set creates the user's reminder for req.EventID or replaces and re-arms
	// the existing one.
	Set(ctx context.Context, userID string, req models.ReminderRequest) (models.Reminder, error)
	// Delete removes the user's reminder for eventID. Deleting an absent
	// reminder succeeds.
	Delete(ctx context.Context, userID string, eventID models.EventID) error
	// List returns the user's reminders in stored order.
	List(ctx context.Context, userID string) ([]models.Reminder, error)
}

// UserLookup resolves the owner of a reminder.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Notifier appends a feed entry and pushes it to the user.
type Notifier interface {
	Notify(ctx context.Context, userID string, entry notification.Entry) (*models.Notification, error)
}

// SortByReminderTime orders reminders by reminderTime ascending, in place.
func SortByReminderTime(reminders []models.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].ReminderTime.Before(reminders[j].ReminderTime)
	})
}
