package reminder

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	reminderRepo "devnotify/database/repository/reminder"
	"devnotify/models"
	"devnotify/services/email"
	"devnotify/services/notification"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DueMessage is the feed message for a reminder that has fallen due.
func DueMessage(eventName string) string {
	return fmt.Sprintf("Reminder: %s is coming up!", eventName)
}

// Result describes how far delivery of one reminder got.
type Result struct {
	Recorded  bool
	EmailSent bool
	Marked    bool
	Err       error
}

// CycleReport summarizes one due-check cycle.
type CycleReport struct {
	Scanned     int `json:"scanned"`
	Delivered   int `json:"delivered"`
	EmailFailed int `json:"emailFailed"`
	Failed      int `json:"failed"`
}

// Orchestrator delivers due reminders: feed entry, push, email, then the
// notified flag. A reminder whose feed entry or flag update fails stays
// unnotified and is picked up by a later cycle.
type Orchestrator struct {
	scanner  *Scanner
	repo     reminderRepo.ReminderRepository
	notifier Notifier
	mailer   email.Sender
	logger   *zap.Logger

	Timeout     time.Duration
	Concurrency int
}

func NewOrchestrator(
	scanner *Scanner,
	repo reminderRepo.ReminderRepository,
	notifier Notifier,
	mailer email.Sender,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		scanner:     scanner,
		repo:        repo,
		notifier:    notifier,
		mailer:      mailer,
		logger:      logger,
		Timeout:     5 * time.Second,
		Concurrency: 4,
	}
}

func (o *Orchestrator) call(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()
	return fn(ctx)
}

// Deliver runs the delivery steps for one due reminder. A panic is recovered
// and reported in Result.Err.
func (o *Orchestrator) Deliver(ctx context.Context, due models.DueReminder) (res Result) {
	log := o.logger.With(
		zap.String("userId", due.UserID),
		zap.String("reminderId", due.Reminder.ID),
		zap.String("eventId", due.Reminder.EventID.String()),
	)
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while delivering reminder",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			res.Err = fmt.Errorf("panic delivering reminder %s: %v", due.Reminder.ID, r)
		}
	}()

	rem := due.Reminder

	// Feed entry first; the notifier pushes it once stored.
	err := o.call(ctx, func(ctx context.Context) error {
		_, err := o.notifier.Notify(ctx, due.UserID, notification.Entry{
			Type:      models.NotificationReminder,
			Message:   DueMessage(rem.EventName),
			EventID:   rem.EventID,
			EventName: rem.EventName,
		})
		return err
	})
	if err != nil {
		log.Error("failed to record reminder notification; will retry next cycle", zap.Error(err))
		res.Err = err
		return res
	}
	res.Recorded = true

	if due.Email != "" {
		msg := email.ReminderDue(due.Name, rem.EventName, rem.EventDate)
		err = o.call(ctx, func(ctx context.Context) error {
			return o.mailer.Send(ctx, due.Email, msg.Subject, msg.Text, msg.HTML)
		})
		if err != nil {
			log.Warn("reminder email failed", zap.Error(err))
		} else {
			res.EmailSent = true
		}
	}

	var marked bool
	err = o.call(ctx, func(ctx context.Context) error {
		var err error
		marked, err = o.repo.MarkNotified(ctx, due.UserID, rem)
		return err
	})
	if err != nil {
		log.Error("failed to mark reminder notified; will retry next cycle", zap.Error(err))
		res.Err = err
		return res
	}
	if !marked {
		log.Info("reminder changed during delivery; flag left as is")
	}
	res.Marked = marked
	return res
}

// RunCycle scans the window at now and delivers every due reminder with
// bounded concurrency. A scan error abandons the rest of the cycle; reminders
// already handed out still finish.
func (o *Orchestrator) RunCycle(ctx context.Context, now time.Time) (CycleReport, error) {
	var (
		mu     sync.Mutex
		report CycleReport
		g      errgroup.Group
	)
	limit := o.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	scanErr := o.scanner.Scan(ctx, now, func(due models.DueReminder) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		mu.Lock()
		report.Scanned++
		mu.Unlock()

		g.Go(func() error {
			res := o.Deliver(ctx, due)
			mu.Lock()
			defer mu.Unlock()
			if res.Recorded {
				report.Delivered++
				if due.Email != "" && !res.EmailSent {
					report.EmailFailed++
				}
			}
			if res.Err != nil {
				report.Failed++
			}
			return nil
		})
		return nil
	})
	_ = g.Wait()

	if scanErr != nil {
		o.logger.Error("due reminder scan failed; cycle abandoned",
			zap.Time("now", now),
			zap.Int("dispatched", report.Scanned),
			zap.Error(scanErr),
		)
		return report, fmt.Errorf("scan due reminders: %w", scanErr)
	}

	if report.Scanned > 0 {
		o.logger.Info("reminder cycle finished",
			zap.Int("scanned", report.Scanned),
			zap.Int("delivered", report.Delivered),
			zap.Int("emailFailed", report.EmailFailed),
			zap.Int("failed", report.Failed),
		)
	}
	return report, nil
}
