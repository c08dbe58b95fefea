package reminder

import (
	"context"
	"time"

	reminderRepo "devnotify/database/repository/reminder"
	"devnotify/models"
)

// Scanner selects reminders that fall due within the lookahead window.
// It keeps no state between scans.
type Scanner struct {
	repo      reminderRepo.ReminderRepository
	lookahead time.Duration
}

func NewScanner(repo reminderRepo.ReminderRepository, lookahead time.Duration) *Scanner {
	return &Scanner{repo: repo, lookahead: lookahead}
}

// Window returns the half-open interval [now, now+lookahead) scanned at now.
func (s *Scanner) Window(now time.Time) (from, to time.Time) {
	return now, now.Add(s.lookahead)
}

// Scan streams every unnotified reminder due in the window to fn.
func (s *Scanner) Scan(ctx context.Context, now time.Time, fn func(models.DueReminder) error) error {
	from, to := s.Window(now)
	return s.repo.FindDue(ctx, from, to, fn)
}
