package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devnotify/database"
	"devnotify/models"
)

func (s *DefaultUserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	u.PasswordHash = ""
	if u.SavedEvents == nil {
		u.SavedEvents = []models.EventID{}
	}
	if u.Reminders == nil {
		u.Reminders = []models.Reminder{}
	}
	return u, nil
}

// ToggleSavedEvent adds eventID to the saved list, or removes it if already saved.
func (s *DefaultUserService) ToggleSavedEvent(ctx context.Context, userID string, eventID models.EventID) ([]models.EventID, error) {
	eventID = models.EventID(strings.TrimSpace(string(eventID)))
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}
	saved, err := s.Repo.ToggleSavedEvent(ctx, userID, eventID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SetFCMToken registers the device used for mobile/web push. An empty token unregisters it.
func (s *DefaultUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	err := s.Repo.SetFCMToken(ctx, userID, strings.TrimSpace(token))
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
