package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"devnotify/database"
	"devnotify/models"
	"devnotify/services/push"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	mu        sync.Mutex
	items     []*models.Notification
	appendErr error
}

func (m *memRepo) Append(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	cp := *n
	m.items = append(m.items, &cp)
	return nil
}

func (m *memRepo) AppendMany(ctx context.Context, ns []*models.Notification) error {
	for _, n := range ns {
		if err := m.Append(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (m *memRepo) ListByUser(_ context.Context, userID string, limit int64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) MarkRead(_ context.Context, userID, id string) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			cp := *n
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

type staticUsers []string

func (s staticUsers) ListIDs(context.Context) ([]string, error) { return s, nil }

type published struct {
	userID  string
	event   string
	payload any
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, userID, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, published{userID, event, payload})
	return r.err
}

func newService(t *testing.T, repo *memRepo, users staticUsers, pub *recordingPublisher) *DefaultNotificationService {
	t.Helper()
	svc, err := NewDefaultNotificationService(repo, users, pub, zap.NewNop())
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestNotifyAppendsThenPushes(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := newService(t, repo, nil, pub)

	n, err := svc.Notify(context.Background(), "u1", Entry{
		Type:      models.NotificationReminder,
		Message:   "Reminder: Hack Week is coming up!",
		EventID:   "42",
		EventName: "Hack Week",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.IsRead)

	require.Len(t, repo.items, 1)
	require.Len(t, pub.sent, 1)
	assert.Equal(t, "u1", pub.sent[0].userID)
	assert.Equal(t, push.EventNotification, pub.sent[0].event)
	assert.Equal(t, *n, pub.sent[0].payload)
}

func TestNotifyPushFailureIsNotAnError(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{err: errors.New("socket gone")}
	svc := newService(t, repo, nil, pub)

	_, err := svc.Notify(context.Background(), "u1", Entry{Type: models.NotificationSystem, Message: "hi"})
	assert.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestNotifyStoreFailureSkipsPush(t *testing.T) {
	repo := &memRepo{appendErr: errors.New("db down")}
	pub := &recordingPublisher{}
	svc := newService(t, repo, nil, pub)

	_, err := svc.Notify(context.Background(), "u1", Entry{Type: models.NotificationSystem, Message: "hi"})
	assert.Error(t, err)
	assert.Empty(t, pub.sent)
}

func TestNotifyRejectsUnknownType(t *testing.T) {
	svc := newService(t, &memRepo{}, nil, &recordingPublisher{})
	_, err := svc.Notify(context.Background(), "u1", Entry{Type: "promo"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestListNewestFirstAndMarkRead(t *testing.T) {
	repo := &memRepo{}
	svc := newService(t, repo, nil, &recordingPublisher{})
	ctx := context.Background()

	first, err := svc.Notify(ctx, "u1", Entry{Type: models.NotificationSystem, Message: "first"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "u1", Entry{Type: models.NotificationSystem, Message: "second"})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, "u2", Entry{Type: models.NotificationSystem, Message: "other"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	read, err := svc.MarkRead(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	_, err = svc.MarkRead(ctx, "u2", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := svc.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBroadcastEvent(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := newService(t, repo, staticUsers{"u1", "u2", "u3"}, pub)

	count, err := svc.BroadcastEvent(context.Background(), &models.Event{ID: "e1", Name: "Hack Week"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, repo.items, 3)
	assert.Len(t, pub.sent, 3)
	for _, n := range repo.items {
		assert.Equal(t, models.NotificationEvent, n.Type)
		assert.Equal(t, models.EventID("e1"), n.EventID)
		assert.Contains(t, n.Message, "Hack Week")
	}
}
