package userRepo

import (
	"context"

	"devnotify/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user without its password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user including its password hash.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ToggleSavedEvent removes eventID from the saved list if present, adds it otherwise.
	ToggleSavedEvent(ctx context.Context, id string, eventID models.EventID) ([]models.EventID, error)
	// SetFCMToken stores the device token used for mobile/web push.
	SetFCMToken(ctx context.Context, id, token string) error
	// ListIDs returns the IDs of every user.
	ListIDs(ctx context.Context) ([]string, error)
}
