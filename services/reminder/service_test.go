package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"devnotify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(store *memStore, notifier *memNotifier, mailer *memMailer) *DefaultReminderService {
	svc := NewDefaultReminderService(store, store, notifier, mailer, zap.NewNop())
	svc.Now = fixedClock(t0)
	svc.NewID = sequentialIDs()
	return svc
}

func ptr(t time.Time) *time.Time { return &t }

var alice = models.User{ID: "alice", Name: "Alice", Email: "alice@example.com"}

func TestSetDefaultsReminderTimeToEventDate(t *testing.T) {
	store := newMemStore(alice)
	notifier := &memNotifier{}
	mailer := &memMailer{}
	svc := newTestService(store, notifier, mailer)

	eventDate := t0.Add(50 * time.Minute)
	r, err := svc.Set(context.Background(), "alice", models.ReminderRequest{
		EventID:   "42",
		EventName: "Hack Week",
		EventDate: eventDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "rem-1", r.ID)
	assert.True(t, r.ReminderTime.Equal(eventDate))
	assert.False(t, r.IsNotified)

	assert.Equal(t, []string{"Reminder set for Hack Week"}, notifier.messagesFor("alice"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].to)
	assert.Equal(t, "Reminder set for Hack Week", mailer.sent[0].subject)
}

func TestSetReplacesAndRearmsExistingReminder(t *testing.T) {
	store := newMemStore(alice)
	svc := newTestService(store, &memNotifier{}, &memMailer{})
	ctx := context.Background()

	first, err := svc.Set(ctx, "alice", models.ReminderRequest{
		EventID: "42", EventName: "Hack Week", EventDate: t0.Add(time.Hour),
	})
	require.NoError(t, err)

	ok, err := store.MarkNotified(ctx, "alice", first)
	require.NoError(t, err)
	require.True(t, ok)

	second, err := svc.Set(ctx, "alice", models.ReminderRequest{
		EventID: "42", EventName: "Hack Week 2", EventDate: t0.Add(48 * time.Hour),
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Hack Week 2", list[0].EventName)
	assert.True(t, list[0].EventDate.Equal(t0.Add(48*time.Hour)))
	assert.False(t, list[0].IsNotified)
}

func TestSetValidation(t *testing.T) {
	eventDate := t0.Add(time.Hour)
	cases := []struct {
		name string
		req  models.ReminderRequest
	}{
		{"missing event id", models.ReminderRequest{EventName: "X", EventDate: eventDate}},
		{"blank event id", models.ReminderRequest{EventID: "  ", EventName: "X", EventDate: eventDate}},
		{"missing event name", models.ReminderRequest{EventID: "1", EventDate: eventDate}},
		{"missing event date", models.ReminderRequest{EventID: "1", EventName: "X"}},
		{"reminder after event", models.ReminderRequest{
			EventID: "1", EventName: "X", EventDate: eventDate, ReminderTime: ptr(eventDate.Add(time.Minute)),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(alice)
			svc := newTestService(store, &memNotifier{}, &memMailer{})
			_, err := svc.Set(context.Background(), "alice", tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			list, _ := store.ListByUser(context.Background(), "alice")
			assert.Empty(t, list)
		})
	}
}

func TestSetAcceptsEarlierReminderTime(t *testing.T) {
	svc := newTestService(newMemStore(alice), &memNotifier{}, &memMailer{})
	eventDate := t0.Add(48 * time.Hour)
	r, err := svc.Set(context.Background(), "alice", models.ReminderRequest{
		EventID: "7", EventName: "X", EventDate: eventDate, ReminderTime: ptr(eventDate.Add(-24 * time.Hour)),
	})
	require.NoError(t, err)
	assert.True(t, r.ReminderTime.Equal(t0.Add(24*time.Hour)))
}

func TestSetUnknownUser(t *testing.T) {
	svc := newTestService(newMemStore(), &memNotifier{}, &memMailer{})
	_, err := svc.Set(context.Background(), "ghost", models.ReminderRequest{
		EventID: "1", EventName: "X", EventDate: t0,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetSurvivesEmailAndFeedFailures(t *testing.T) {
	store := newMemStore(alice)
	notifier := &memNotifier{failFor: map[string]error{"alice": errBoom}}
	svc := newTestService(store, notifier, &memMailer{err: errBoom})

	_, err := svc.Set(context.Background(), "alice", models.ReminderRequest{
		EventID: "1", EventName: "X", EventDate: t0.Add(time.Hour),
	})
	require.NoError(t, err)
	_, stored := store.reminder("alice", "1")
	assert.True(t, stored)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newMemStore(alice)
	svc := newTestService(store, &memNotifier{}, &memMailer{})
	ctx := context.Background()

	_, err := svc.Set(ctx, "alice", models.ReminderRequest{EventID: "1", EventName: "X", EventDate: t0.Add(time.Hour)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", "99"))
	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "alice", "1"))
	require.NoError(t, svc.Delete(ctx, "alice", "1"))
	list, err = svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteAndListErrors(t *testing.T) {
	svc := newTestService(newMemStore(alice), &memNotifier{}, &memMailer{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "alice", ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(ctx, "ghost", "1"), ErrNotFound)

	_, err := svc.List(ctx, "ghost")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSortByReminderTime(t *testing.T) {
	list := []models.Reminder{
		{EventID: "c", ReminderTime: t0.Add(3 * time.Hour)},
		{EventID: "a", ReminderTime: t0.Add(time.Hour)},
		{EventID: "b", ReminderTime: t0.Add(2 * time.Hour)},
	}
	SortByReminderTime(list)
	assert.Equal(t, []models.EventID{"a", "b", "c"}, []models.EventID{list[0].EventID, list[1].EventID, list[2].EventID})
}
