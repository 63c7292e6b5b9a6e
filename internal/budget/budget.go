// Package budget manages the single monthly budget record.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs"
)

const (
	namespace = "budget_prefs"

	keyAmount                = "budget_amount"
	keyCurrency              = "budget_currency"
	keyNotificationEnabled   = "notification_enabled"
	keyNotificationThreshold = "notification_threshold"
)

const (
	defaultAmountCents = 150000 // 1500.00
	defaultThreshold   = 90
)

// Repository reads and writes the budget settings. There is exactly one
// record per installation, overwritten wholesale on save.
type Repository struct {
	ns              *prefs.Namespace
	defaultCurrency string
}

func NewRepository(p prefs.Store, defaultCurrency string) *Repository {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &Repository{ns: prefs.NewNamespace(p, namespace), defaultCurrency: defaultCurrency}
}

// Get returns the persisted settings, or defaults when nothing was saved
// yet. Unreadable individual fields degrade to their defaults.
func (r *Repository) Get(ctx context.Context) core.Budget {
	b := core.Budget{
		Amount:                core.Money{Cents: defaultAmountCents},
		Currency:              r.defaultCurrency,
		NotificationEnabled:   true,
		NotificationThreshold: defaultThreshold,
	}
	if cents, ok, err := r.ns.GetInt64(ctx, keyAmount); err == nil && ok {
		b.Amount = core.Money{Cents: cents}
	}
	if cur, ok, err := r.ns.GetString(ctx, keyCurrency); err == nil && ok && cur != "" {
		b.Currency = cur
	}
	if enabled, ok, err := r.ns.GetBool(ctx, keyNotificationEnabled); err == nil && ok {
		b.NotificationEnabled = enabled
	}
	if threshold, ok, err := r.ns.GetInt(ctx, keyNotificationThreshold); err == nil && ok {
		b.NotificationThreshold = threshold
	}
	return b
}

// Save overwrites the budget record.
func (r *Repository) Save(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := r.ns.SetInt64(ctx, keyAmount, b.Amount.Cents); err != nil {
		return fmt.Errorf("save budget amount: %w", err)
	}
	if err := r.ns.SetString(ctx, keyCurrency, b.Currency); err != nil {
		return fmt.Errorf("save budget currency: %w", err)
	}
	if err := r.ns.SetBool(ctx, keyNotificationEnabled, b.NotificationEnabled); err != nil {
		return fmt.Errorf("save notification flag: %w", err)
	}
	if err := r.ns.SetInt(ctx, keyNotificationThreshold, b.NotificationThreshold); err != nil {
		return fmt.Errorf("save notification threshold: %w", err)
	}
	slog.InfoContext(ctx, "Budget saved",
		"amount", b.Amount.Amount(),
		"currency", b.Currency,
		"threshold", b.NotificationThreshold)
	return nil
}

// HasBudget reports whether a budget amount was ever saved.
func (r *Repository) HasBudget(ctx context.Context) bool {
	ok, err := r.ns.Contains(ctx, keyAmount)
	return err == nil && ok
}

// UsagePercentage is round(expenses/budget*100) clamped to [0, 100].
// The clamp is deliberate: the value feeds a progress display, so 150%
// usage reads as 100. A zero budget means nothing is configured and
// always reports 0.
func (r *Repository) UsagePercentage(ctx context.Context, expenses core.Money) int {
	b := r.Get(ctx)
	if b.Amount.Cents <= 0 {
		return 0
	}
	pct := int(math.Round(float64(expenses.Cents) / float64(b.Amount.Cents) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ThresholdExceeded reports whether usage has reached the configured
// alert threshold.
func (r *Repository) ThresholdExceeded(ctx context.Context, expenses core.Money) bool {
	b := r.Get(ctx)
	return r.UsagePercentage(ctx, expenses) >= b.NotificationThreshold
}
