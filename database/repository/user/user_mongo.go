package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) (UserRepository, error) {
	repo := &MongoUserRepo{coll: db.Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SavedEvents == nil {
		user.SavedEvents = []models.EventID{}
	}
	if user.Reminders == nil {
		user.Reminders = []models.Reminder{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its unique ID, excluding sensitive fields.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a full user document by email.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) ToggleSavedEvent(ctx context.Context, id string, eventID models.EventID) ([]models.EventID, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	pulled, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "savedEvents": eventID},
		bson.M{"$pull": bson.M{"savedEvents": eventID}, "$set": bson.M{"updatedAt": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to unsave event %s for user %s: %w", eventID, id, err)
	}
	if pulled.MatchedCount == 0 {
		added, err := r.coll.UpdateOne(ctx,
			bson.M{"id": id},
			bson.M{"$addToSet": bson.M{"savedEvents": eventID}, "$set": bson.M{"updatedAt": now}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save event %s for user %s: %w", eventID, id, err)
		}
		if added.MatchedCount == 0 {
			return nil, database.ErrNotFound
		}
	}

	var doc struct {
		SavedEvents []models.EventID `bson:"savedEvents"`
	}
	opts := options.FindOne().SetProjection(bson.M{"savedEvents": 1})
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to read saved events for user %s: %w", id, err)
	}
	if doc.SavedEvents == nil {
		doc.SavedEvents = []models.EventID{}
	}
	return doc.SavedEvents, nil
}

func (r *MongoUserRepo) SetFCMToken(ctx context.Context, id, token string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"fcmToken": token}})
	if err != nil {
		return fmt.Errorf("failed to set fcm token for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}
