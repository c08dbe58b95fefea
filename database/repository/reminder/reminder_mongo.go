package reminderRepo

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

type mongoReminderRepo struct {
	users *mongo.Collection
}

// NewMongoReminderRepo returns a ReminderRepository over the users collection.
func NewMongoReminderRepo(db *mongo.Database) (ReminderRepository, error) {
	repo := &mongoReminderRepo{users: db.Collection("users")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoReminderRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reminders.isNotified", Value: 1},
			{Key: "reminders.reminderTime", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create reminder indexes: %w", err)
	}
	return nil
}

func (r *mongoReminderRepo) Upsert(ctx context.Context, userID string, rem models.Reminder) (models.Reminder, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Two passes: a concurrent insert of the same event can win the $push race,
	// in which case the second replace pass overwrites it.
	for attempt := 0; attempt < 2; attempt++ {
		replaced, err := r.replace(ctx, userID, rem)
		if err != nil {
			return models.Reminder{}, err
		}
		if replaced {
			return r.get(ctx, userID, rem.EventID)
		}

		pushed, err := r.users.UpdateOne(ctx,
			bson.M{"id": userID, "reminders.eventId": bson.M{"$ne": rem.EventID}},
			bson.M{
				"$push": bson.M{"reminders": rem},
				"$set":  bson.M{"updatedAt": rem.UpdatedAt},
			},
		)
		if err != nil {
			return models.Reminder{}, fmt.Errorf("failed to add reminder for user %s: %w", userID, err)
		}
		if pushed.MatchedCount == 1 {
			return rem, nil
		}

		exists, err := r.users.CountDocuments(ctx, bson.M{"id": userID}, options.Count().SetLimit(1))
		if err != nil {
			return models.Reminder{}, fmt.Errorf("failed to look up user %s: %w", userID, err)
		}
		if exists == 0 {
			return models.Reminder{}, database.ErrNotFound
		}
	}
	return models.Reminder{}, fmt.Errorf("reminder for event %s of user %s changed concurrently", rem.EventID, userID)
}

// replace overwrites the mutable fields of an existing reminder and re-arms it.
func (r *mongoReminderRepo) replace(ctx context.Context, userID string, rem models.Reminder) (bool, error) {
	result, err := r.users.UpdateOne(ctx,
		bson.M{"id": userID, "reminders.eventId": rem.EventID},
		bson.M{"$set": bson.M{
			"reminders.$.eventName":    rem.EventName,
			"reminders.$.eventDate":    rem.EventDate,
			"reminders.$.reminderTime": rem.ReminderTime,
			"reminders.$.isNotified":   false,
			"reminders.$.updatedAt":    rem.UpdatedAt,
			"updatedAt":                rem.UpdatedAt,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to replace reminder for user %s: %w", userID, err)
	}
	return result.MatchedCount == 1, nil
}

func (r *mongoReminderRepo) get(ctx context.Context, userID string, eventID models.EventID) (models.Reminder, error) {
	var doc struct {
		Reminders []models.Reminder `bson:"reminders"`
	}
	opts := options.FindOne().SetProjection(bson.M{
		"reminders": bson.M{"$elemMatch": bson.M{"eventId": eventID}},
	})
	if err := r.users.FindOne(ctx, bson.M{"id": userID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Reminder{}, database.ErrNotFound
		}
		return models.Reminder{}, fmt.Errorf("failed to read reminder for user %s: %w", userID, err)
	}
	if len(doc.Reminders) == 0 {
		return models.Reminder{}, database.ErrNotFound
	}
	return doc.Reminders[0], nil
}

func (r *mongoReminderRepo) Delete(ctx context.Context, userID string, eventID models.EventID) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.users.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$pull": bson.M{"reminders": bson.M{"eventId": eventID}}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete reminder %s for user %s: %w", eventID, userID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoReminderRepo) ListByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Reminders []models.Reminder `bson:"reminders"`
	}
	opts := options.FindOne().SetProjection(bson.M{"reminders": 1})
	if err := r.users.FindOne(ctx, bson.M{"id": userID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to list reminders for user %s: %w", userID, err)
	}
	if doc.Reminders == nil {
		doc.Reminders = []models.Reminder{}
	}
	return doc.Reminders, nil
}

func (r *mongoReminderRepo) FindDue(ctx context.Context, from, to time.Time, fn func(models.DueReminder) error) error {
	window := bson.M{"$gte": from, "$lt": to}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"reminders": bson.M{"$elemMatch": bson.M{
			"isNotified":   false,
			"reminderTime": window,
		}}}}},
		{{Key: "$unwind", Value: "$reminders"}},
		{{Key: "$match", Value: bson.M{
			"reminders.isNotified":   false,
			"reminders.reminderTime": window,
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"userId":   "$id",
			"email":    1,
			"name":     1,
			"reminder": "$reminders",
		}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var due models.DueReminder
		if err := cursor.Decode(&due); err != nil {
			return fmt.Errorf("failed to decode due reminder: %w", err)
		}
		if err := fn(due); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// MarkNotified only matches the exact revision that was scanned; replace bumps
// updatedAt, so a re-armed reminder is left unnotified.
func (r *mongoReminderRepo) MarkNotified(ctx context.Context, userID string, rem models.Reminder) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.users.UpdateOne(ctx,
		bson.M{
			"id": userID,
			"reminders": bson.M{"$elemMatch": bson.M{
				"id":           rem.ID,
				"eventName":    rem.EventName,
				"eventDate":    rem.EventDate,
				"reminderTime": rem.ReminderTime,
				"updatedAt":    rem.UpdatedAt,
				"isNotified":   false,
			}},
		},
		bson.M{"$set": bson.M{"reminders.$.isNotified": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder %s notified: %w", rem.ID, err)
	}
	return result.ModifiedCount == 1, nil
}
