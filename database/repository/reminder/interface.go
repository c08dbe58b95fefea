package reminderRepo

import (
	"context"
	"time"

	"devnotify/models"
)

// ReminderRepository stores reminders embedded in their owner's user document.
type ReminderRepository interface {
	// Upsert replaces the user's reminder for r.EventID, or adds it if absent.
	// A replaced reminder keeps its ID and CreatedAt. Returns the stored reminder.
	Upsert(ctx context.Context, userID string, r models.Reminder) (models.Reminder, error)
	// Delete removes the user's reminder for eventID. Absent reminders are not an error.
	Delete(ctx context.Context, userID string, eventID models.EventID) error
	// ListByUser returns every reminder of the user in stored order.
	ListByUser(ctx context.Context, userID string) ([]models.Reminder, error)
	// FindDue streams every unnotified reminder with from <= reminderTime < to.
	// Iteration stops at the first error returned by fn.
	FindDue(ctx context.Context, from, to time.Time, fn func(models.DueReminder) error) error
	// MarkNotified flips isNotified for exactly the given reminder revision.
	// It returns false when the reminder was deleted, re-armed or already notified.
	MarkNotified(ctx context.Context, userID string, r models.Reminder) (bool, error)
}
