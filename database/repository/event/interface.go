package eventRepo

import (
	"context"

	"devnotify/models"
)

type EventRepository interface {
	// List returns every event ordered by date ascending.
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
}
