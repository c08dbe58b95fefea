package models

import "time"

type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationEvent    NotificationType = "event"
	NotificationSystem   NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationReminder, NotificationEvent, NotificationSystem:
		return true
	}
	return false
}

// Notification is an entry in a user's feed. Only IsRead ever changes, and only
// from false to true.
type Notification struct {
	ID        string           `bson:"id" json:"_id"`
	UserID    string           `bson:"userId" json:"userId"`
	Type      NotificationType `bson:"type" json:"type"`
	Message   string           `bson:"message" json:"message"`
	EventID   EventID          `bson:"eventId,omitempty" json:"eventId,omitempty"`
	EventName string           `bson:"eventName,omitempty" json:"eventName,omitempty"`
	IsRead    bool             `bson:"isRead" json:"isRead"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
