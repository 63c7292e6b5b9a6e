package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "t1",
		Title:    "Groceries",
		Amount:   Money{Cents: 12550},
		Category: "Food and Dining",
		Date:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{ID: "t", Title: "", Amount: Money{Cents: 1}, Category: "c", Date: good.Date},
		{ID: "t", Title: "a", Amount: Money{Cents: 0}, Category: "c", Date: good.Date},
		{ID: "t", Title: "a", Amount: Money{Cents: -5}, Category: "c", Date: good.Date},
		{ID: "t", Title: "a", Amount: Money{Cents: 1}, Category: "  ", Date: good.Date},
		{ID: "t", Title: "a", Amount: Money{Cents: 1}, Category: "c", Date: time.Time{}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNewTransactionAssignsID(t *testing.T) {
	a := NewTransaction("Coffee", Money{Cents: 350}, "Food and Dining", time.Now(), false)
	b := NewTransaction("Coffee", Money{Cents: 350}, "Food and Dining", time.Now(), false)
	if a.ID == "" || b.ID == "" {
		t.Fatal("expected generated ids")
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct ids")
	}
}

func TestBudgetValidate(t *testing.T) {
	cases := []struct {
		b  Budget
		ok bool
	}{
		{Budget{Amount: Money{Cents: 150000}, NotificationThreshold: 90}, true},
		{Budget{Amount: Money{Cents: 0}, NotificationThreshold: 0}, true}, // no budget configured
		{Budget{Amount: Money{Cents: -1}, NotificationThreshold: 90}, false},
		{Budget{Amount: Money{Cents: 100}, NotificationThreshold: 101}, false},
		{Budget{Amount: Money{Cents: 100}, NotificationThreshold: -1}, false},
	}
	for i, tc := range cases {
		err := tc.b.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNotificationSettingsValidate(t *testing.T) {
	good := NotificationSettings{BudgetAlertThreshold: 90, ReminderHour: 20, ReminderMinute: 0}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []NotificationSettings{
		{BudgetAlertThreshold: 120},
		{BudgetAlertThreshold: 50, ReminderHour: 24},
		{BudgetAlertThreshold: 50, ReminderHour: 10, ReminderMinute: 60},
	}
	for i, ns := range bads {
		if err := ns.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryTaxonomy(t *testing.T) {
	if got := DefaultCategory(true); got != "Salary" {
		t.Fatalf("default income category = %q", got)
	}
	if got := DefaultCategory(false); got != "Food and Dining" {
		t.Fatalf("default expense category = %q", got)
	}
	if len(ExpenseCategories()) != 5 {
		t.Fatalf("expected 5 expense categories, got %d", len(ExpenseCategories()))
	}
	if len(IncomeCategories()) != 2 {
		t.Fatalf("expected 2 income categories, got %d", len(IncomeCategories()))
	}
}
