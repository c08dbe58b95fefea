package reminderRepo

import (
	"context"
	"testing"
	"time"

	"devnotify/database"
	"devnotify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const usersNS = "devnotify.users"

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testReminder() models.Reminder {
	return models.Reminder{
		ID:           "rem-1",
		EventID:      "42",
		EventName:    "Hack Week",
		EventDate:    t0.Add(2 * time.Hour),
		ReminderTime: t0.Add(time.Hour),
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
}

func updateOK(matched, modified int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: modified},
	)
}

func TestMarkNotified(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("matches only the scanned revision", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(updateOK(1, 1))

		rem := testReminder()
		ok, err := repo.MarkNotified(context.Background(), "alice", rem)
		require.NoError(mt, err)
		assert.True(mt, ok)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)

		q := started.Command.Lookup("updates", "0", "q")
		assert.Equal(mt, "alice", q.Document().Lookup("id").StringValue())
		match := q.Document().Lookup("reminders", "$elemMatch").Document()
		assert.Equal(mt, "rem-1", match.Lookup("id").StringValue())
		assert.Equal(mt, "Hack Week", match.Lookup("eventName").StringValue())
		assert.True(mt, match.Lookup("eventDate").Time().Equal(rem.EventDate))
		assert.True(mt, match.Lookup("reminderTime").Time().Equal(rem.ReminderTime))
		assert.True(mt, match.Lookup("updatedAt").Time().Equal(rem.UpdatedAt))
		assert.False(mt, match.Lookup("isNotified").Boolean())

		set := started.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.True(mt, set.Lookup("reminders.$.isNotified").Boolean())
	})

	mt.Run("re-armed reminder is left alone", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(updateOK(0, 0))

		ok, err := repo.MarkNotified(context.Background(), "alice", testReminder())
		require.NoError(mt, err)
		assert.False(mt, ok)
	})
}

func TestUpsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("adds when absent", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(updateOK(0, 0), updateOK(1, 1))

		rem := testReminder()
		got, err := repo.Upsert(context.Background(), "alice", rem)
		require.NoError(mt, err)
		assert.Equal(mt, rem, got)

		replace := mt.GetStartedEvent()
		require.NotNil(mt, replace)
		rq := replace.Command.Lookup("updates", "0", "q").Document()
		assert.Equal(mt, "42", rq.Lookup("reminders.eventId").StringValue())
		rset := replace.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.False(mt, rset.Lookup("reminders.$.isNotified").Boolean())
		assert.Equal(mt, "Hack Week", rset.Lookup("reminders.$.eventName").StringValue())

		push := mt.GetStartedEvent()
		require.NotNil(mt, push)
		pq := push.Command.Lookup("updates", "0", "q").Document()
		assert.Equal(mt, "42", pq.Lookup("reminders.eventId", "$ne").StringValue())
		pushed := push.Command.Lookup("updates", "0", "u", "$push", "reminders").Document()
		assert.Equal(mt, "rem-1", pushed.Lookup("id").StringValue())
		assert.False(mt, pushed.Lookup("isNotified").Boolean())
	})

	mt.Run("replaces when present", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		stored := testReminder()
		stored.EventName = "Hack Week 2"
		mt.AddMockResponses(
			updateOK(1, 1),
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
				bson.D{{Key: "reminders", Value: bson.A{stored}}}),
		)

		rem := testReminder()
		rem.EventName = "Hack Week 2"
		got, err := repo.Upsert(context.Background(), "alice", rem)
		require.NoError(mt, err)
		assert.Equal(mt, "rem-1", got.ID)
		assert.Equal(mt, "Hack Week 2", got.EventName)
		assert.False(mt, got.IsNotified)
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(
			updateOK(0, 0),
			updateOK(0, 0),
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch),
		)

		_, err := repo.Upsert(context.Background(), "ghost", testReminder())
		assert.ErrorIs(mt, err, database.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("absent reminder is not an error", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(updateOK(1, 0))

		require.NoError(mt, repo.Delete(context.Background(), "alice", "42"))
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		pull := started.Command.Lookup("updates", "0", "u", "$pull", "reminders").Document()
		assert.Equal(mt, "42", pull.Lookup("eventId").StringValue())
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		mt.AddMockResponses(updateOK(0, 0))

		assert.ErrorIs(mt, repo.Delete(context.Background(), "ghost", "42"), database.ErrNotFound)
	})
}

func TestFindDue(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("streams due reminders from the window", func(mt *mtest.T) {
		repo := &mongoReminderRepo{users: mt.Coll}
		rem := testReminder()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			bson.D{
				{Key: "userId", Value: "alice"},
				{Key: "email", Value: "alice@example.com"},
				{Key: "name", Value: "Alice"},
				{Key: "reminder", Value: rem},
			},
		))

		from, to := t0, t0.Add(time.Hour+time.Minute)
		var got []models.DueReminder
		err := repo.FindDue(context.Background(), from, to, func(d models.DueReminder) error {
			got = append(got, d)
			return nil
		})
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "alice", got[0].UserID)
		assert.Equal(mt, "alice@example.com", got[0].Email)
		assert.Equal(mt, "rem-1", got[0].Reminder.ID)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
		match := started.Command.Lookup("pipeline", "2", "$match").Document()
		assert.False(mt, match.Lookup("reminders.isNotified").Boolean())
		assert.True(mt, match.Lookup("reminders.reminderTime", "$gte").Time().Equal(from))
		assert.True(mt, match.Lookup("reminders.reminderTime", "$lt").Time().Equal(to))
	})
}
