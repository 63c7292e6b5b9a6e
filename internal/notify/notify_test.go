package notify

import (
	"context"
	"testing"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs/memory"
)

func TestGetDefaults(t *testing.T) {
	r := NewRepository(memory.New())
	ns := r.Get(context.Background())

	if !ns.BudgetAlertsEnabled || ns.BudgetAlertThreshold != 90 {
		t.Fatalf("alert defaults = %+v", ns)
	}
	if ns.DailyRemindersEnabled {
		t.Fatal("reminders should default to off")
	}
	if ns.ReminderHour != 20 || ns.ReminderMinute != 0 {
		t.Fatalf("reminder time defaults = %d:%02d", ns.ReminderHour, ns.ReminderMinute)
	}
}

func TestSaveThenGet(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New())

	in := core.NotificationSettings{
		BudgetAlertsEnabled:   false,
		BudgetAlertThreshold:  80,
		DailyRemindersEnabled: true,
		ReminderHour:          7,
		ReminderMinute:        30,
	}
	if err := r.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := r.Get(ctx); got != in {
		t.Fatalf("round trip: %+v != %+v", got, in)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	r := NewRepository(memory.New())
	bad := core.NotificationSettings{BudgetAlertThreshold: 90, ReminderHour: 25}
	if err := r.Save(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}
}
