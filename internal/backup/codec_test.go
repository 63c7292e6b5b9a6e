package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bossfinance/internal/core"
	"bossfinance/internal/prefs/memory"
	"bossfinance/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	p := memory.New()
	if err := p.SetString(ctx, "transaction_prefs", "transactions", "[]"); err != nil {
		t.Fatalf("prime store: %v", err)
	}
	s, err := store.New(ctx, p)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return s
}

func backupPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "bossfin_backup.json")
}

func TestExportEmptyStoreWritesNothing(t *testing.T) {
	s := newStore(t)
	path := backupPath(t)
	c := NewCodec(s, path)

	if _, err := c.Export(context.Background()); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("empty export must not create a file")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := NewCodec(s, backupPath(t))

	date := time.Date(2025, 7, 4, 18, 30, 15, 0, time.UTC)
	originals := []core.Transaction{
		{ID: "t1", Title: "Salary", Amount: core.Money{Cents: 320000}, Category: "Salary", Date: date, IsIncome: true},
		{ID: "t2", Title: "Groceries", Amount: core.Money{Cents: 12550}, Category: "Food and Dining", Date: date.AddDate(0, 0, 1), IsIncome: false},
	}
	for _, tr := range originals {
		if _, err := s.Add(ctx, tr); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	n, err := c.Export(ctx)
	if err != nil || n != 2 {
		t.Fatalf("export: n=%d err=%v", n, err)
	}

	summary, err := c.Import(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 2 || summary.Skipped != 0 || len(summary.Fallbacks) != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	for _, want := range originals {
		got, err := s.Get(want.ID)
		if err != nil {
			t.Fatalf("get %s: %v", want.ID, err)
		}
		if got.Title != want.Title || got.Amount != want.Amount || got.Category != want.Category || got.IsIncome != want.IsIncome {
			t.Fatalf("round trip mismatch: %+v != %+v", got, want)
		}
		if !got.Date.Equal(want.Date) {
			t.Fatalf("date mismatch: %v != %v", got.Date, want.Date)
		}
	}
}

func TestReimportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := NewCodec(s, backupPath(t))

	if _, err := s.Add(ctx, core.Transaction{ID: "a", Title: "x", Amount: core.Money{Cents: 100}, Category: "c", Date: time.Now()}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.Export(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Import(ctx); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
		if s.Count() != 1 {
			t.Fatalf("import %d: count = %d, want 1 (replace, not merge)", i, s.Count())
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	c := NewCodec(newStore(t), backupPath(t))
	if _, err := c.Import(context.Background()); !errors.Is(err, ErrNoBackupFound) {
		t.Fatalf("expected ErrNoBackupFound, got %v", err)
	}
}

func TestImportDistinctErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"blank document", "   \n", ErrInvalidFormat},
		{"not json", "{broken", ErrInvalidFormat},
		{"not an array", `{"id":"x"}`, ErrInvalidFormat},
		{"empty array", "[]", ErrEmptyBackup},
		{"all records invalid", `[{"title":"no other fields"}, 42]`, ErrNoValidTransactions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := backupPath(t)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			c := NewCodec(newStore(t), path)
			if _, err := c.Import(context.Background()); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestImportPartialRecovery(t *testing.T) {
	// Three records: one clean, one missing amount (dropped), one with an
	// unparseable date (kept with a fallback).
	doc := `[
		{"id":"ok","title":"Clean","amount":10.5,"category":"Shopping","date":"2025-02-01T09:00:00Z","isIncome":false},
		{"id":"noamount","title":"Broken","category":"Shopping","date":"2025-02-02T09:00:00Z","isIncome":false},
		{"id":"baddate","title":"Odd date","amount":3,"category":"Transport","date":"02/03/2025","isIncome":false}
	]`
	path := backupPath(t)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newStore(t)
	c := NewCodec(s, path)
	summary, err := c.Import(context.Background())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 2 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Message() != "2 imported, 1 skipped" {
		t.Fatalf("message = %q", summary.Message())
	}
	if len(summary.Fallbacks) != 1 || summary.Fallbacks[0].Field != FieldDate || summary.Fallbacks[0].Record != 2 {
		t.Fatalf("fallbacks = %+v", summary.Fallbacks)
	}

	// The date-fallback record keeps its other fields.
	got, err := s.Get("baddate")
	if err != nil {
		t.Fatalf("get baddate: %v", err)
	}
	if got.Title != "Odd date" || got.Amount.Cents != 300 || got.Category != "Transport" {
		t.Fatalf("fallback record lost fields: %+v", got)
	}
	if time.Since(got.Date) > time.Minute {
		t.Fatalf("fallback date should be about now, got %v", got.Date)
	}
	if _, err := s.Get("noamount"); err == nil {
		t.Fatal("amount-less record should have been dropped")
	}
}

func TestImportFieldFallbacks(t *testing.T) {
	doc := `[
		{"id":123,"title":"","amount":5,"category":7,"date":"2025-02-01T09:00:00Z","isIncome":"yes"}
	]`
	path := backupPath(t)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := newStore(t)
	summary, err := NewCodec(s, path).Import(context.Background())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	fired := map[FallbackField]bool{}
	for _, f := range summary.Fallbacks {
		fired[f.Field] = true
	}
	for _, want := range []FallbackField{FieldID, FieldTitle, FieldCategory, FieldIsIncome} {
		if !fired[want] {
			t.Fatalf("expected %s fallback, got %+v", want, summary.Fallbacks)
		}
	}
	if fired[FieldDate] {
		t.Fatal("date was valid, no fallback expected")
	}

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("count = %d", len(all))
	}
	got := all[0]
	if got.ID == "" || got.Title != "Untitled transaction" || got.Category != "Uncategorized" || got.IsIncome {
		t.Fatalf("fallback values wrong: %+v", got)
	}
}

func TestExportOverwritesPreviousBackup(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	path := backupPath(t)
	c := NewCodec(s, path)

	if _, err := s.Add(ctx, core.Transaction{ID: "a", Title: "first", Amount: core.Money{Cents: 100}, Category: "c", Date: time.Now()}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.Export(ctx); err != nil {
		t.Fatalf("export: %v", err)
	}
	first, _ := os.ReadFile(path)

	if _, err := s.Add(ctx, core.Transaction{ID: "b", Title: "second", Amount: core.Money{Cents: 200}, Category: "c", Date: time.Now()}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.Export(ctx); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	second, _ := os.ReadFile(path)

	if string(first) == string(second) {
		t.Fatal("re-export should overwrite the backup file")
	}
}
