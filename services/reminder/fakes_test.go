package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"devnotify/database"
	"devnotify/models"
	"devnotify/services/notification"
)

type memUser struct {
	user      models.User
	reminders []models.Reminder
}

// memStore is an in-memory stand-in for the users collection with embedded reminders.
type memStore struct {
	mu    sync.Mutex
	users map[string]*memUser

	findDueErr   error
	markErr      error
	markCalls    int
	findDueCalls int
}

func newMemStore(users ...models.User) *memStore {
	s := &memStore{users: make(map[string]*memUser)}
	for _, u := range users {
		s.users[u.ID] = &memUser{user: u}
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := u.user
	cp.Reminders = append([]models.Reminder(nil), u.reminders...)
	return &cp, nil
}

func (s *memStore) Upsert(_ context.Context, userID string, r models.Reminder) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return models.Reminder{}, database.ErrNotFound
	}
	for i, existing := range u.reminders {
		if existing.EventID == r.EventID {
			existing.EventName = r.EventName
			existing.EventDate = r.EventDate
			existing.ReminderTime = r.ReminderTime
			existing.IsNotified = false
			existing.UpdatedAt = r.UpdatedAt
			u.reminders[i] = existing
			return existing, nil
		}
	}
	u.reminders = append(u.reminders, r)
	return r, nil
}

func (s *memStore) Delete(_ context.Context, userID string, eventID models.EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	kept := u.reminders[:0]
	for _, r := range u.reminders {
		if r.EventID != eventID {
			kept = append(kept, r)
		}
	}
	u.reminders = kept
	return nil
}

func (s *memStore) ListByUser(_ context.Context, userID string) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return append([]models.Reminder{}, u.reminders...), nil
}

func (s *memStore) FindDue(ctx context.Context, from, to time.Time, fn func(models.DueReminder) error) error {
	s.mu.Lock()
	s.findDueCalls++
	if s.findDueErr != nil {
		err := s.findDueErr
		s.mu.Unlock()
		return err
	}
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var due []models.DueReminder
	for _, id := range ids {
		u := s.users[id]
		for _, r := range u.reminders {
			if r.IsNotified || r.ReminderTime.Before(from) || !r.ReminderTime.Before(to) {
				continue
			}
			due = append(due, models.DueReminder{UserID: id, Email: u.user.Email, Name: u.user.Name, Reminder: r})
		}
	}
	s.mu.Unlock()

	for _, d := range due {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) MarkNotified(_ context.Context, userID string, r models.Reminder) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markCalls++
	if s.markErr != nil {
		return false, s.markErr
	}
	u, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	for i, existing := range u.reminders {
		if existing.ID == r.ID && sameRevision(existing, r) && !existing.IsNotified {
			u.reminders[i].IsNotified = true
			return true, nil
		}
	}
	return false, nil
}

func sameRevision(a, b models.Reminder) bool {
	return a.EventName == b.EventName &&
		a.EventDate.Equal(b.EventDate) &&
		a.ReminderTime.Equal(b.ReminderTime) &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

func (s *memStore) reminder(userID string, eventID models.EventID) (models.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.users[userID].reminders {
		if r.EventID == eventID {
			return r, true
		}
	}
	return models.Reminder{}, false
}

type feedEntry struct {
	userID string
	entry  notification.Entry
}

// memNotifier records feed entries and the pushes that follow them.
type memNotifier struct {
	mu      sync.Mutex
	entries []feedEntry
	pushes  []string
	failFor map[string]error
	panicOn string
}

func (n *memNotifier) Notify(_ context.Context, userID string, entry notification.Entry) (*models.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.panicOn != "" && userID == n.panicOn {
		panic("notifier exploded")
	}
	if err := n.failFor[userID]; err != nil {
		return nil, err
	}
	n.entries = append(n.entries, feedEntry{userID, entry})
	n.pushes = append(n.pushes, userID)
	return &models.Notification{UserID: userID, Type: entry.Type, Message: entry.Message}, nil
}

func (n *memNotifier) messagesFor(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.entries {
		if e.userID == userID {
			out = append(out, e.entry.Message)
		}
	}
	return out
}

type sentMail struct {
	to, subject string
}

type memMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	err     error
	failFor map[string]error
}

func (m *memMailer) Send(_ context.Context, to, subject, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if err := m.failFor[to]; err != nil {
		return err
	}
	m.sent = append(m.sent, sentMail{to, subject})
	return nil
}

var errBoom = errors.New("boom")

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("rem-%d", n)
	}
}
