package budget

import (
	"context"
	"testing"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs/memory"
)

func TestGetDefaults(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New(), "EUR")

	b := r.Get(ctx)
	if b.Amount.Cents != 150000 {
		t.Fatalf("default amount = %d", b.Amount.Cents)
	}
	if b.Currency != "EUR" {
		t.Fatalf("default currency = %q", b.Currency)
	}
	if !b.NotificationEnabled || b.NotificationThreshold != 90 {
		t.Fatalf("default notification settings = %+v", b)
	}
	if r.HasBudget(ctx) {
		t.Fatal("HasBudget should be false before any save")
	}
}

func TestSaveThenGet(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New(), "USD")

	in := core.Budget{
		Amount:                core.Money{Cents: 200000},
		Currency:              "GBP",
		NotificationEnabled:   false,
		NotificationThreshold: 75,
	}
	if err := r.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !r.HasBudget(ctx) {
		t.Fatal("HasBudget should be true after save")
	}
	got := r.Get(ctx)
	if got != in {
		t.Fatalf("round trip: %+v != %+v", got, in)
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	r := NewRepository(memory.New(), "USD")
	bad := core.Budget{Amount: core.Money{Cents: 1000}, NotificationThreshold: 150}
	if err := r.Save(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUsagePercentageClamps(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New(), "USD")

	if err := r.Save(ctx, core.Budget{Amount: core.Money{Cents: 20000}, Currency: "USD", NotificationEnabled: true, NotificationThreshold: 90}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cases := []struct {
		expensesCents int64
		want          int
	}{
		{0, 0},
		{10000, 50},
		{18000, 90},
		{20000, 100},
		{50000, 100}, // 250% clamps to 100
		{10100, 51},  // 50.5% rounds half-up
	}
	for _, tc := range cases {
		got := r.UsagePercentage(ctx, core.Money{Cents: tc.expensesCents})
		if got != tc.want {
			t.Fatalf("usage(%d) = %d, want %d", tc.expensesCents, got, tc.want)
		}
	}
}

func TestUsagePercentageZeroBudget(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New(), "USD")
	if err := r.Save(ctx, core.Budget{Amount: core.Money{Cents: 0}, Currency: "USD", NotificationThreshold: 90}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := r.UsagePercentage(ctx, core.Money{Cents: 999999}); got != 0 {
		t.Fatalf("zero budget usage = %d, want 0", got)
	}
}

func TestThresholdExceeded(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(memory.New(), "USD")
	if err := r.Save(ctx, core.Budget{Amount: core.Money{Cents: 20000}, Currency: "USD", NotificationEnabled: true, NotificationThreshold: 90}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if r.ThresholdExceeded(ctx, core.Money{Cents: 17000}) {
		t.Fatal("85% should not exceed a 90% threshold")
	}
	if !r.ThresholdExceeded(ctx, core.Money{Cents: 18000}) {
		t.Fatal("90% should exceed a 90% threshold")
	}
	if !r.ThresholdExceeded(ctx, core.Money{Cents: 40000}) {
		t.Fatal("clamped 100% should exceed the threshold")
	}
}
