// Package store owns the canonical transaction collection. All queries
// and mutations pass through it; every mutation rewrites the whole
// persisted blob (full-replace semantics, acceptable at personal-ledger
// volumes).
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs"
)

const (
	namespace              = "transaction_prefs"
	keyTransactions        = "transactions"
	keyLastIncomeCategory  = "last_income_category"
	keyLastExpenseCategory = "last_expense_category"
)

// ErrTransactionNotFound is a normal outcome for lookups and a reported
// one for updates: an edit of a vanished record must not be silently
// dropped.
var ErrTransactionNotFound = errors.New("transaction not found")

// Store keeps the in-memory list as a write-through cache over one
// preference key. A single mutex serializes every read-modify-write
// cycle, so back-to-back mutations apply in issue order.
type Store struct {
	mu    sync.Mutex
	ns    *prefs.Namespace
	items []core.Transaction
}

// New loads the persisted collection. A corrupt blob logs and falls back
// to an empty list; a genuinely empty store (no prior record at all) is
// seeded with sample transactions on first run.
func New(ctx context.Context, p prefs.Store) (*Store, error) {
	s := &Store{ns: prefs.NewNamespace(p, namespace)}

	hadData, err := s.ns.Contains(ctx, keyTransactions)
	if err != nil {
		return nil, fmt.Errorf("check transaction store: %w", err)
	}

	if hadData {
		raw, ok, err := s.ns.GetString(ctx, keyTransactions)
		if err != nil {
			return nil, fmt.Errorf("load transactions: %w", err)
		}
		if ok {
			items, err := core.DecodeTransactions([]byte(raw))
			if err != nil {
				slog.WarnContext(ctx, "Stored transactions unreadable, starting empty", "error", err)
			} else {
				s.items = items
			}
		}
		return s, nil
	}

	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("seed sample transactions: %w", err)
	}
	return s, nil
}

// seed writes the illustrative first-run transactions. It only ever runs
// when storage held no prior record, so genuine user data is never
// overwritten.
func (s *Store) seed(ctx context.Context) error {
	now := time.Now()
	samples := []core.Transaction{
		core.NewTransaction("Monthly Salary", core.Money{Cents: 320000}, "Salary", now, true),
		core.NewTransaction("Groceries", core.Money{Cents: 12550}, "Food and Dining", now, false),
		core.NewTransaction("Phone Bill", core.Money{Cents: 6500}, "Utilities", now, false),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = samples
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Seeded sample transactions", "count", len(samples))
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := core.EncodeTransactions(s.items)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.ns.SetString(ctx, keyTransactions, string(data)); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}

func sortByDateDesc(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

// All returns every transaction, newest first.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.items...)
	sortByDateDesc(out)
	return out
}

// Count returns the number of stored transactions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get looks a transaction up by id.
func (s *Store) Get(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrTransactionNotFound
}

// Add appends a transaction, assigning an id when absent, and records the
// category as last used for its income/expense side.
func (s *Store) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.Transaction{}, err
	}
	s.saveLastUsedCategoryLocked(ctx, tx.Category, tx.IsIncome)
	return tx, nil
}

// Update replaces the stored record wholesale. A missing id is reported,
// not swallowed.
func (s *Store) Update(ctx context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == tx.ID {
			prev := s.items[i]
			s.items[i] = tx
			if err := s.persistLocked(ctx); err != nil {
				s.items[i] = prev
				return err
			}
			s.saveLastUsedCategoryLocked(ctx, tx.Category, tx.IsIncome)
			return nil
		}
	}
	return ErrTransactionNotFound
}

// Delete removes every record with the given id; absent ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0:0]
	for _, t := range s.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.items) {
		return nil
	}
	prev := s.items
	s.items = kept
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// ReplaceAll swaps in a whole new collection; used by restore. The
// persisted key is cleared before the new set is written so stale data
// can never merge in.
func (s *Store) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ns.Delete(ctx, keyTransactions); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	prev := s.items
	s.items = append([]core.Transaction(nil), txs...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		return err
	}
	slog.InfoContext(ctx, "Replaced transaction collection", "count", len(txs))
	return nil
}

// TotalIncome sums all income transactions.
func (s *Store) TotalIncome() core.Money {
	return s.sumWhere(true)
}

// TotalExpenses sums all expense transactions.
func (s *Store) TotalExpenses() core.Money {
	return s.sumWhere(false)
}

// CurrentBalance is income minus expenses and may be negative.
func (s *Store) CurrentBalance() core.Money {
	return s.TotalIncome().Sub(s.TotalExpenses())
}

func (s *Store) sumWhere(isIncome bool) core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Money
	for _, t := range s.items {
		if t.IsIncome == isIncome {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// IncomeTransactions returns income records, newest first.
func (s *Store) IncomeTransactions() []core.Transaction {
	return s.filterWhere(true)
}

// ExpenseTransactions returns expense records, newest first.
func (s *Store) ExpenseTransactions() []core.Transaction {
	return s.filterWhere(false)
}

func (s *Store) filterWhere(isIncome bool) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.items {
		if t.IsIncome == isIncome {
			out = append(out, t)
		}
	}
	sortByDateDesc(out)
	return out
}

// ForMonth returns the transactions of one calendar month, newest first.
func (s *Store) ForMonth(year int, month time.Month) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.items {
		if core.SameMonth(t.Date, year, month) {
			out = append(out, t)
		}
	}
	sortByDateDesc(out)
	return out
}

// CategorySpending sums expense transactions inside [start, end]
// inclusive, grouped by category and ordered by amount descending
// (name ascending on ties).
func (s *Store) CategorySpending(start, end time.Time) []core.CategoryAmount {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[string]core.Money)
	for _, t := range s.items {
		if t.IsIncome {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	out := make([]core.CategoryAmount, 0, len(sums))
	for name, amount := range sums {
		out = append(out, core.CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// LastUsedCategory returns the most recently used category for the given
// side, falling back to the first suggested one.
func (s *Store) LastUsedCategory(ctx context.Context, isIncome bool) string {
	key := keyLastExpenseCategory
	if isIncome {
		key = keyLastIncomeCategory
	}
	v, ok, err := s.ns.GetString(ctx, key)
	if err != nil || !ok || v == "" {
		return core.DefaultCategory(isIncome)
	}
	return v
}

// saveLastUsedCategoryLocked is best-effort: a failure only loses a form
// preselection, never a transaction.
func (s *Store) saveLastUsedCategoryLocked(ctx context.Context, category string, isIncome bool) {
	key := keyLastExpenseCategory
	if isIncome {
		key = keyLastIncomeCategory
	}
	if err := s.ns.SetString(ctx, key, category); err != nil {
		slog.WarnContext(ctx, "Failed to save last used category", "category", category, "error", err)
	}
}
