package repository

import (
	eventRepo "devnotify/database/repository/event"
	notificationRepo "devnotify/database/repository/notification"
	reminderRepo "devnotify/database/repository/reminder"
	userRepo "devnotify/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces and constructors.
type UserRepository = userRepo.UserRepository

type ReminderRepository = reminderRepo.ReminderRepository

type NotificationRepository = notificationRepo.NotificationRepository

type EventRepository = eventRepo.EventRepository

var (
	NewMongoUserRepo         = userRepo.NewMongoUserRepo
	NewMongoReminderRepo     = reminderRepo.NewMongoReminderRepo
	NewMongoNotificationRepo = notificationRepo.NewMongoNotificationRepo
	NewMongoEventRepo        = eventRepo.NewMongoEventRepo
)

// Set groups every repository backed by one database.
type Set struct {
	Users         UserRepository
	Reminders     ReminderRepository
	Notifications NotificationRepository
	Events        EventRepository
}

// NewMongoSet builds all repositories and ensures their indexes.
func NewMongoSet(db *mongo.Database) (*Set, error) {
	users, err := NewMongoUserRepo(db)
	if err != nil {
		return nil, err
	}
	reminders, err := NewMongoReminderRepo(db)
	if err != nil {
		return nil, err
	}
	notifications, err := NewMongoNotificationRepo(db)
	if err != nil {
		return nil, err
	}
	events, err := NewMongoEventRepo(db)
	if err != nil {
		return nil, err
	}
	return &Set{
		Users:         users,
		Reminders:     reminders,
		Notifications: notifications,
		Events:        events,
	}, nil
}
