package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devnotify/database"
	notificationRepo "devnotify/database/repository/notification"
	"devnotify/models"
	"devnotify/services/push"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultListLimit = 100

var (
	ErrNotFound    = errors.New("notification not found")
	ErrInvalidType = errors.New("invalid notification type")
)

// UserLister lists the IDs of every user, for broadcasts.
type UserLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo      notificationRepo.NotificationRepository
	users     UserLister
	publisher push.Publisher
	logger    *zap.Logger

	Now       func() time.Time
	ListLimit int64
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users UserLister,
	publisher push.Publisher,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil || publisher == nil {
		return nil, fmt.Errorf("notification service initialization error: repository, user lister or publisher is nil")
	}
	return &DefaultNotificationService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
		Now:       time.Now,
		ListLimit: defaultListLimit,
	}, nil
}

func (s *DefaultNotificationService) build(userID string, entry Entry) (*models.Notification, error) {
	if !entry.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, entry.Type)
	}
	return &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      entry.Type,
		Message:   entry.Message,
		EventID:   entry.EventID,
		EventName: entry.EventName,
		IsRead:    false,
		CreatedAt: s.Now().UTC(),
	}, nil
}

func (s *DefaultNotificationService) Notify(ctx context.Context, userID string, entry Entry) (*models.Notification, error) {
	n, err := s.build(userID, entry)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, n); err != nil {
		return nil, fmt.Errorf("append notification for user %s: %w", userID, err)
	}

	// Push is fire-and-forget.
	if err := s.publisher.Publish(ctx, userID, push.EventNotification, *n); err != nil {
		s.logger.Warn("notification push failed",
			zap.String("userId", userID),
			zap.String("notificationId", n.ID),
			zap.Error(err),
		)
	}
	return n, nil
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := s.repo.ListByUser(ctx, userID, s.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %s: %w", userID, err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	n, err := s.repo.MarkRead(ctx, userID, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return n, nil
}

func (s *DefaultNotificationService) BroadcastEvent(ctx context.Context, event *models.Event) (int, error) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users for broadcast: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	entry := Entry{
		Type:      models.NotificationEvent,
		Message:   fmt.Sprintf("New event added: %s", event.Name),
		EventID:   models.EventID(event.ID),
		EventName: event.Name,
	}
	batch := make([]*models.Notification, 0, len(ids))
	for _, id := range ids {
		n, err := s.build(id, entry)
		if err != nil {
			return 0, err
		}
		batch = append(batch, n)
	}
	if err := s.repo.AppendMany(ctx, batch); err != nil {
		return 0, fmt.Errorf("append event notifications: %w", err)
	}

	for _, n := range batch {
		if err := s.publisher.Publish(ctx, n.UserID, push.EventNotification, *n); err != nil {
			s.logger.Debug("event broadcast push failed", zap.String("userId", n.UserID), zap.Error(err))
		}
	}
	s.logger.Info("event broadcast", zap.String("eventId", event.ID), zap.Int("users", len(batch)))
	return len(batch), nil
}
