package notificationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devnotify/database"
	"devnotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository using MongoDB.
func NewMongoNotificationRepo(db *mongo.Database) (NotificationRepository, error) {
	repo := &mongoNotificationRepo{coll: db.Collection("notifications")}

	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return repo, nil
}

func (r *mongoNotificationRepo) Append(ctx context.Context, n *models.Notification) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to append notification for user %s: %w", n.UserID, err)
	}
	return nil
}

func (r *mongoNotificationRepo) AppendMany(ctx context.Context, ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	ctx, cancel := database.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	docs := make([]interface{}, len(ns))
	for i, n := range ns {
		docs[i] = n
	}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to append %d notifications: %w", len(ns), err)
	}
	return nil
}

// ListByUser returns the newest notifications first.
func (r *mongoNotificationRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Notification
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true}},
		opts,
	).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return &n, nil
}
