// Package notify manages the notification settings record: the budget
// alert toggle and threshold plus the daily entry reminder. Delivery
// itself is the worker's concern.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs"
)

const (
	namespace = "notification_prefs"

	keyBudgetAlertsEnabled   = "budget_alerts_enabled"
	keyBudgetAlertThreshold  = "budget_alert_threshold"
	keyDailyRemindersEnabled = "daily_reminders_enabled"
	keyReminderHour          = "reminder_hour"
	keyReminderMinute        = "reminder_minute"
)

// Repository reads and writes the single notification settings record.
type Repository struct {
	ns *prefs.Namespace
}

func NewRepository(p prefs.Store) *Repository {
	return &Repository{ns: prefs.NewNamespace(p, namespace)}
}

// Get returns the persisted settings or defaults: alerts on at 90%,
// reminders off at 20:00.
func (r *Repository) Get(ctx context.Context) core.NotificationSettings {
	ns := core.NotificationSettings{
		BudgetAlertsEnabled:   true,
		BudgetAlertThreshold:  90,
		DailyRemindersEnabled: false,
		ReminderHour:          20,
		ReminderMinute:        0,
	}
	if v, ok, err := r.ns.GetBool(ctx, keyBudgetAlertsEnabled); err == nil && ok {
		ns.BudgetAlertsEnabled = v
	}
	if v, ok, err := r.ns.GetInt(ctx, keyBudgetAlertThreshold); err == nil && ok {
		ns.BudgetAlertThreshold = v
	}
	if v, ok, err := r.ns.GetBool(ctx, keyDailyRemindersEnabled); err == nil && ok {
		ns.DailyRemindersEnabled = v
	}
	if v, ok, err := r.ns.GetInt(ctx, keyReminderHour); err == nil && ok {
		ns.ReminderHour = v
	}
	if v, ok, err := r.ns.GetInt(ctx, keyReminderMinute); err == nil && ok {
		ns.ReminderMinute = v
	}
	return ns
}

// Save overwrites the settings record.
func (r *Repository) Save(ctx context.Context, settings core.NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := r.ns.SetBool(ctx, keyBudgetAlertsEnabled, settings.BudgetAlertsEnabled); err != nil {
		return fmt.Errorf("save alert flag: %w", err)
	}
	if err := r.ns.SetInt(ctx, keyBudgetAlertThreshold, settings.BudgetAlertThreshold); err != nil {
		return fmt.Errorf("save alert threshold: %w", err)
	}
	if err := r.ns.SetBool(ctx, keyDailyRemindersEnabled, settings.DailyRemindersEnabled); err != nil {
		return fmt.Errorf("save reminder flag: %w", err)
	}
	if err := r.ns.SetInt(ctx, keyReminderHour, settings.ReminderHour); err != nil {
		return fmt.Errorf("save reminder hour: %w", err)
	}
	if err := r.ns.SetInt(ctx, keyReminderMinute, settings.ReminderMinute); err != nil {
		return fmt.Errorf("save reminder minute: %w", err)
	}
	slog.InfoContext(ctx, "Notification settings saved",
		"alerts_enabled", settings.BudgetAlertsEnabled,
		"threshold", settings.BudgetAlertThreshold,
		"reminders_enabled", settings.DailyRemindersEnabled)
	return nil
}
