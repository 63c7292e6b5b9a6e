// Package worker runs the notification side of the alert queue: it
// consumes budget alerts and daily reminders and schedules the reminder
// publications.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bossfinance/internal/amqp"
	"bossfinance/internal/notify"
)

// AlertWorker consumes alert queue messages and publishes the daily
// entry reminder at the configured time.
type AlertWorker struct {
	client   *amqp.Client
	settings *notify.Repository
	now      func() time.Time
}

func NewAlertWorker(client *amqp.Client, settings *notify.Repository) *AlertWorker {
	return &AlertWorker{
		client:   client,
		settings: settings,
		now:      time.Now,
	}
}

// Run blocks until the context is cancelled or either loop fails.
func (w *AlertWorker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.client.Consume(ctx, w.handleBudgetAlert, w.handleDailyReminder)
	})
	g.Go(func() error {
		return w.runReminderScheduler(ctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("alert worker: %w", err)
	}
	return nil
}

// handleBudgetAlert delivers a budget alert. Delivery here is a
// structured log line; a platform notifier would hang off this handler.
func (w *AlertWorker) handleBudgetAlert(msg *amqp.BudgetAlertMessage) error {
	slog.Info("Budget threshold reached",
		"usagePercent", msg.UsagePercent,
		"threshold", msg.Threshold,
		"spentCents", msg.SpentCents,
		"budgetCents", msg.BudgetCents,
		"currency", msg.Currency)
	return nil
}

func (w *AlertWorker) handleDailyReminder(msg *amqp.DailyReminderMessage) error {
	slog.Info("Daily entry reminder",
		"hour", msg.Hour,
		"minute", msg.Minute)
	return nil
}

// runReminderScheduler waits for the next configured reminder time,
// publishes a reminder if reminders are still enabled, and repeats. The
// settings are re-read on every cycle so changes apply without a
// restart.
func (w *AlertWorker) runReminderScheduler(ctx context.Context) error {
	for {
		settings := w.settings.Get(ctx)
		next := nextOccurrence(w.now(), settings.ReminderHour, settings.ReminderMinute)

		slog.InfoContext(ctx, "Next reminder slot scheduled",
			"at", next.Format(time.RFC3339),
			"enabled", settings.DailyRemindersEnabled)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		// Re-read: the flag or the time may have changed while waiting.
		settings = w.settings.Get(ctx)
		if !settings.DailyRemindersEnabled {
			continue
		}

		msg := amqp.NewDailyReminderMessage(settings.ReminderHour, settings.ReminderMinute)
		if err := w.client.PublishDailyReminder(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish daily reminder", "error", err)
		}
	}
}

// nextOccurrence returns the next wall-clock instant of hour:minute
// strictly after now.
func nextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
