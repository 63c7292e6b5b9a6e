// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bossfinance/internal/amqp"
	"bossfinance/internal/backup"
	"bossfinance/internal/budget"
	"bossfinance/internal/core"
	"bossfinance/internal/notify"
	"bossfinance/internal/store"
)

// AlertPublisher is the slice of the AMQP client the service needs.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error
}

// LedgerService orchestrates transaction mutations across the local store
// and the alert queue. Mutations always succeed or fail on the local store
// alone; alert publishing is best-effort and never fails the request.
type LedgerService struct {
	store     *store.Store
	budgets   *budget.Repository
	settings  *notify.Repository
	backups   *backup.Codec
	publisher AlertPublisher
}

func NewLedgerService(st *store.Store, budgets *budget.Repository, settings *notify.Repository, backups *backup.Codec, publisher AlertPublisher) *LedgerService {
	return &LedgerService{
		store:     st,
		budgets:   budgets,
		settings:  settings,
		backups:   backups,
		publisher: publisher,
	}
}

// AddTransaction saves a transaction locally and re-checks the budget
func (s *LedgerService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	saved, err := s.store.Add(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.checkBudget(ctx)
	return saved, nil
}

// UpdateTransaction replaces a stored transaction and re-checks the budget
func (s *LedgerService) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	if err := s.store.Update(ctx, tx); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.checkBudget(ctx)
	return nil
}

// DeleteTransaction removes a transaction; deleting never raises usage,
// so no budget check follows.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// ExportBackup writes the full collection to the backup file.
func (s *LedgerService) ExportBackup(ctx context.Context) (int, error) {
	return s.backups.Export(ctx)
}

// ImportBackup restores the backup file, replacing the collection, and
// re-checks the budget against the restored data.
func (s *LedgerService) ImportBackup(ctx context.Context) (backup.ImportSummary, error) {
	summary, err := s.backups.Import(ctx)
	if err != nil {
		return summary, err
	}

	s.checkBudget(ctx)
	return summary, nil
}

// checkBudget publishes a budget alert when the current month's spending
// has reached the configured threshold. Failures are logged, never
// escalated: the mutation that triggered the check already succeeded.
func (s *LedgerService) checkBudget(ctx context.Context) {
	if s.publisher == nil {
		return
	}
	if !s.budgets.HasBudget(ctx) {
		return
	}

	b := s.budgets.Get(ctx)
	settings := s.settings.Get(ctx)
	if !b.NotificationEnabled || !settings.BudgetAlertsEnabled {
		return
	}

	spent := s.monthExpenses(time.Now())
	if !s.budgets.ThresholdExceeded(ctx, spent) {
		return
	}

	usage := s.budgets.UsagePercentage(ctx, spent)
	msg := amqp.NewBudgetAlertMessage(usage, b.NotificationThreshold, spent.Cents, b.Amount.Cents, b.Currency)
	if err := s.publisher.PublishBudgetAlert(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"usagePercent", usage, "error", err)
		// Don't fail the request - the transaction is saved locally
	}
}

func (s *LedgerService) monthExpenses(now time.Time) core.Money {
	var total core.Money
	for _, tx := range s.store.ForMonth(now.Year(), now.Month()) {
		if !tx.IsIncome {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
