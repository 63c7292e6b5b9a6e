package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bossfinance/internal/backend"
	"bossfinance/internal/backup"
	"bossfinance/internal/budget"
	"bossfinance/internal/cli"
	"bossfinance/internal/core"
	"bossfinance/internal/notify"
	"bossfinance/internal/report"
	"bossfinance/internal/services"
	"bossfinance/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bossfin")

	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.ConfigFromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Cleanup failed", "error", err)
		}
	}()

	st, err := store.New(ctx, result.Prefs)
	if err != nil {
		logger.Error("Failed to initialize transaction store", "error", err)
		os.Exit(1)
	}

	budgets := budget.NewRepository(result.Prefs, cfg.DefaultCurrency)
	settings := notify.NewRepository(result.Prefs)
	backups := backup.NewCodec(st, cfg.BackupFile)

	var publisher services.AlertPublisher
	if result.Alerts != nil {
		publisher = result.Alerts
	}
	svc := services.NewLedgerService(st, budgets, settings, backups, publisher)

	command := "dashboard"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dashboard":
		runDashboard(ctx, st, budgets)
	case "export":
		runExport(ctx, svc, cfg.BackupFile)
	case "import":
		runImport(ctx, svc, cfg.BackupFile)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected dashboard, export or import)\n", command)
		os.Exit(2)
	}
}

func runDashboard(ctx context.Context, st *store.Store, budgets *budget.Repository) {
	now := time.Now()
	b := budgets.Get(ctx)
	spent := monthExpenses(st, now)
	usage := budgets.UsagePercentage(ctx, spent)
	top := report.NewAggregator(st).TopCategories(now.Year(), now.Month(), report.TopCategoryLimit)

	fmt.Printf("Balance:   %.2f %s\n", st.CurrentBalance().Amount(), b.Currency)
	fmt.Printf("Income:    %.2f %s\n", st.TotalIncome().Amount(), b.Currency)
	fmt.Printf("Expenses:  %.2f %s\n", st.TotalExpenses().Amount(), b.Currency)
	fmt.Println()

	if budgets.HasBudget(ctx) {
		fmt.Printf("Budget %s: %.2f / %.2f %s (%d%%)\n",
			now.Format("January 2006"), spent.Amount(), b.Amount.Amount(), b.Currency, usage)
	} else {
		fmt.Printf("Budget %s: not set (spent %.2f %s)\n",
			now.Format("January 2006"), spent.Amount(), b.Currency)
	}
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No spending this month.")
		return
	}
	fmt.Println("Top categories:")
	for _, ca := range top {
		fmt.Printf("  %-20s %10.2f %s\n", ca.Name, ca.Amount.Amount(), b.Currency)
	}
}

func monthExpenses(st *store.Store, now time.Time) core.Money {
	var total core.Money
	for _, tx := range st.ForMonth(now.Year(), now.Month()) {
		if !tx.IsIncome {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func runExport(ctx context.Context, svc *services.LedgerService, path string) {
	n, err := svc.ExportBackup(ctx)
	if errors.Is(err, backup.ErrNothingToExport) {
		fmt.Println("Nothing to export.")
		return
	}
	if err != nil {
		slog.Error("Export failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d transactions to %s\n", n, path)
}

func runImport(ctx context.Context, svc *services.LedgerService, path string) {
	summary, err := svc.ImportBackup(ctx)
	if err != nil {
		slog.Error("Import failed", "error", err, "path", path)
		os.Exit(1)
	}
	fmt.Println(summary.Message())
	for _, fb := range summary.Fallbacks {
		fmt.Printf("  record %d: %s replaced with a default\n", fb.Record, fb.Field)
	}
}
