package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devnotify/database"
	reminderRepo "devnotify/database/repository/reminder"
	"devnotify/models"
	"devnotify/services/email"
	"devnotify/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReminderService is the production ReminderService.
type DefaultReminderService struct {
	repo     reminderRepo.ReminderRepository
	users    UserLookup
	notifier Notifier
	mailer   email.Sender
	logger   *zap.Logger

	Now          func() time.Time
	NewID        func() string
	EmailTimeout time.Duration
}

func NewDefaultReminderService(
	repo reminderRepo.ReminderRepository,
	users UserLookup,
	notifier Notifier,
	mailer email.Sender,
	logger *zap.Logger,
) *DefaultReminderService {
	return &DefaultReminderService{
		repo:         repo,
		users:        users,
		notifier:     notifier,
		mailer:       mailer,
		logger:       logger,
		Now:          time.Now,
		NewID:        func() string { return uuid.New().String() },
		EmailTimeout: 5 * time.Second,
	}
}

func validateRequest(req models.ReminderRequest) (models.ReminderRequest, error) {
	req.EventID = models.EventID(strings.TrimSpace(string(req.EventID)))
	req.EventName = strings.TrimSpace(req.EventName)

	if req.EventID == "" {
		return req, fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}
	if req.EventName == "" {
		return req, fmt.Errorf("%w: eventName is required", ErrInvalidInput)
	}
	if req.EventDate.IsZero() {
		return req, fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}
	if req.ReminderTime == nil || req.ReminderTime.IsZero() {
		at := req.EventDate
		req.ReminderTime = &at
	}
	if req.ReminderTime.After(req.EventDate) {
		return req, fmt.Errorf("%w: reminderTime must not be after eventDate", ErrInvalidInput)
	}
	return req, nil
}

func (s *DefaultReminderService) Set(ctx context.Context, userID string, req models.ReminderRequest) (models.Reminder, error) {
	req, err := validateRequest(req)
	if err != nil {
		return models.Reminder{}, err
	}

	owner, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return models.Reminder{}, ErrNotFound
	}
	if err != nil {
		return models.Reminder{}, fmt.Errorf("look up user %s: %w", userID, err)
	}

	now := s.Now().UTC()
	stored, err := s.repo.Upsert(ctx, userID, models.Reminder{
		ID:           s.NewID(),
		EventID:      req.EventID,
		EventName:    req.EventName,
		EventDate:    req.EventDate.UTC(),
		ReminderTime: req.ReminderTime.UTC(),
		IsNotified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, database.ErrNotFound) {
		return models.Reminder{}, ErrNotFound
	}
	if err != nil {
		return models.Reminder{}, fmt.Errorf("store reminder for user %s: %w", userID, err)
	}

	s.logger.Info("reminder set",
		zap.String("userId", userID),
		zap.String("eventId", stored.EventID.String()),
		zap.Time("reminderTime", stored.ReminderTime),
	)

	if _, err := s.notifier.Notify(ctx, userID, notification.Entry{
		Type:      models.NotificationReminder,
		Message:   fmt.Sprintf("Reminder set for %s", stored.EventName),
		EventID:   stored.EventID,
		EventName: stored.EventName,
	}); err != nil {
		s.logger.Warn("failed to record reminder-set notification",
			zap.String("userId", userID),
			zap.String("eventId", stored.EventID.String()),
			zap.Error(err),
		)
	}

	s.sendSetEmail(ctx, owner, stored)
	return stored, nil
}

func (s *DefaultReminderService) sendSetEmail(ctx context.Context, owner *models.User, r models.Reminder) {
	if owner.Email == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.EmailTimeout)
	defer cancel()

	msg := email.ReminderSet(owner.Name, r.EventName, r.EventDate, r.ReminderTime)
	if err := s.mailer.Send(ctx, owner.Email, msg.Subject, msg.Text, msg.HTML); err != nil {
		s.logger.Warn("reminder-set email failed",
			zap.String("userId", owner.ID),
			zap.String("eventId", r.EventID.String()),
			zap.Error(err),
		)
	}
}

func (s *DefaultReminderService) Delete(ctx context.Context, userID string, eventID models.EventID) error {
	eventID = models.EventID(strings.TrimSpace(string(eventID)))
	if eventID == "" {
		return fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}
	err := s.repo.Delete(ctx, userID, eventID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete reminder %s for user %s: %w", eventID, userID, err)
	}
	return nil
}

func (s *DefaultReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("list reminders for user %s: %w", userID, err)
	}
	if list == nil {
		list = []models.Reminder{}
	}
	return list, nil
}
