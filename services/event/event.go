package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	eventRepo "devnotify/database/repository/event"
	"devnotify/models"
	"devnotify/utils"

	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid event")

type EventService interface {
	// List returns every event ordered by date.
	List(ctx context.Context) ([]models.Event, error)
	// Create stores a new event and announces it to every user.
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
}

// Broadcaster announces a new event to every user's feed.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, e *models.Event) (int, error)
}

// DefaultEventService reads through a Redis cache and falls back to Mongo
// whenever the cache is unavailable.
type DefaultEventService struct {
	repo        eventRepo.EventRepository
	cache       utils.Cache
	broadcaster Broadcaster
	ttl         time.Duration
	logger      *zap.Logger
}

// NewDefaultEventService builds the service. cache may be nil.
func NewDefaultEventService(
	repo eventRepo.EventRepository,
	cache utils.Cache,
	broadcaster Broadcaster,
	ttl time.Duration,
	logger *zap.Logger,
) *DefaultEventService {
	return &DefaultEventService{repo: repo, cache: cache, broadcaster: broadcaster, ttl: ttl, logger: logger}
}

func (s *DefaultEventService) List(ctx context.Context) ([]models.Event, error) {
	if events, ok := s.cached(ctx); ok {
		return events, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	if s.cache != nil && s.ttl > 0 {
		if data, err := json.Marshal(events); err == nil {
			if err := s.cache.Set(ctx, utils.EventsCacheKey, data, s.ttl); err != nil {
				s.logger.Warn("failed to cache events", zap.Error(err))
			}
		}
	}
	return events, nil
}

func (s *DefaultEventService) cached(ctx context.Context) ([]models.Event, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, utils.EventsCacheKey)
	if err != nil {
		if !errors.Is(err, utils.ErrCacheMiss) {
			s.logger.Warn("events cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.logger.Warn("discarding corrupt events cache entry", zap.Error(err))
		return nil, false
	}
	return events, true
}

func (s *DefaultEventService) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if e.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logger.Info("event created", zap.String("eventId", e.ID), zap.String("name", e.Name))

	if s.cache != nil {
		if err := s.cache.Del(ctx, utils.EventsCacheKey); err != nil {
			s.logger.Warn("failed to invalidate events cache", zap.Error(err))
		}
	}

	if s.broadcaster != nil {
		if _, err := s.broadcaster.BroadcastEvent(ctx, e); err != nil {
			s.logger.Error("failed to broadcast new event", zap.String("eventId", e.ID), zap.Error(err))
		}
	}
	return e, nil
}
