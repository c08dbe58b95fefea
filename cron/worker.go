package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"devnotify/services/reminder"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleRunner runs one due-check cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, now time.Time) (reminder.CycleReport, error)
}

// ReminderWorker drives the reminder sweep on a cron schedule.
type ReminderWorker struct {
	runner   CycleRunner
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron

	Now func() time.Time

	mu       sync.Mutex
	ctx      context.Context
	started  bool
	stopOnce sync.Once
}

// NewReminderWorker validates schedule (standard cron or a descriptor such
// as "@every 5m") and prepares the worker. Nothing runs until Start.
func NewReminderWorker(runner CycleRunner, schedule string, logger *zap.Logger) (*ReminderWorker, error) {
	w := &ReminderWorker{
		runner:   runner,
		schedule: schedule,
		logger:   logger,
		Now:      time.Now,
		ctx:      context.Background(),
	}
	cl := cronLogger{logger.Sugar()}
	w.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := w.cron.AddFunc(schedule, w.tick); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start begins the schedule. The worker stops when ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.ctx = ctx
	w.mu.Unlock()

	w.cron.Start()
	w.logger.Info("reminder worker started", zap.String("schedule", w.schedule))

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
}

// Stop halts the schedule and waits for a running cycle to finish.
func (w *ReminderWorker) Stop() {
	w.stopOnce.Do(func() {
		<-w.cron.Stop().Done()
		w.logger.Info("reminder worker stopped")
	})
}

// RunOnce runs a single cycle immediately.
func (w *ReminderWorker) RunOnce(ctx context.Context) (reminder.CycleReport, error) {
	return w.runner.RunCycle(ctx, w.Now().UTC())
}

func (w *ReminderWorker) tick() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if _, err := w.RunOnce(ctx); err != nil {
		w.logger.Warn("reminder cycle failed; retrying next period", zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
