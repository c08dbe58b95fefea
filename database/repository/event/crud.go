package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devnotify/database"
	"devnotify/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo returns an EventRepository using MongoDB.
func NewMongoEventRepo(db *mongo.Database) (EventRepository, error) {
	repo := &mongoEventRepo{coll: db.Collection("events")}

	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event indexes: %w", err)
	}
	return repo, nil
}

func (r *mongoEventRepo) List(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.Event
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return &event, nil
}

// Create inserts a new event, assigning its ID and timestamps.
func (r *mongoEventRepo) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}
