package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/propease_crm/internal/core/ports/services"
)

// ReminderWorker periodically turns due follow-ups into notifications.
type ReminderWorker struct {
	reminders portssvc.FollowUpReminderSvc
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// NewReminderWorker creates a worker that runs every interval, each run
// bounded by timeout.
func NewReminderWorker(reminders portssvc.FollowUpReminderSvc, interval, timeout time.Duration, logger *slog.Logger) *ReminderWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderWorker{
		reminders: reminders,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "reminder_worker")),
	}
}

// Run blocks until ctx is cancelled. The first run happens immediately.
func (w *ReminderWorker) Run(ctx context.Context) {
	w.logger.Info("Reminder worker started", slog.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// Start runs the worker in its own goroutine. The returned channel is closed
// once Run has returned, so callers can wait for an in-flight run before
// closing the adapters it uses.
func (w *ReminderWorker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	sent, err := w.reminders.SendDueReminders(runCtx)
	if err != nil {
		w.logger.Error("Reminder run failed", slog.String("error", err.Error()), slog.Int("sent", sent))
		return
	}
	w.logger.Debug("Reminder run finished", slog.Int("sent", sent))
}
