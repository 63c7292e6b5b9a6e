// Package backup serializes the transaction collection to a standalone
// JSON document and restores it with per-record error tolerance. Backups
// may be hand-edited or produced by older schema versions, so the import
// path recovers as much as legitimately possible instead of failing on
// the first defect.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"bossfinance/internal/core"
)

// The four failure modes callers must be able to tell apart.
var (
	ErrNothingToExport     = errors.New("no transactions to export")
	ErrNoBackupFound       = errors.New("no backup found")
	ErrInvalidFormat       = errors.New("invalid backup format")
	ErrEmptyBackup         = errors.New("no transactions in backup")
	ErrNoValidTransactions = errors.New("no valid transactions in backup")
)

const (
	fallbackTitle    = "Untitled transaction"
	fallbackCategory = "Uncategorized"
)

// FallbackField names a transaction field whose value could not be
// parsed and was replaced by a default during import.
type FallbackField string

const (
	FieldID       FallbackField = "id"
	FieldTitle    FallbackField = "title"
	FieldCategory FallbackField = "category"
	FieldDate     FallbackField = "date"
	FieldIsIncome FallbackField = "isIncome"
)

// FieldFallback records one applied fallback: which record (by array
// index in the document) and which field.
type FieldFallback struct {
	Record int
	Field  FallbackField
}

// ImportSummary reports what a restore did.
type ImportSummary struct {
	Imported  int
	Skipped   int
	Fallbacks []FieldFallback
}

// Message renders the user-facing outcome line.
func (s ImportSummary) Message() string {
	if s.Skipped > 0 {
		return fmt.Sprintf("%d imported, %d skipped", s.Imported, s.Skipped)
	}
	return fmt.Sprintf("%d imported", s.Imported)
}

// Ledger is the slice of the transaction store the codec needs.
type Ledger interface {
	All() []core.Transaction
	ReplaceAll(ctx context.Context, txs []core.Transaction) error
}

// Codec reads and writes the well-known backup file. Export always
// overwrites the same path; there are no versioned backups.
type Codec struct {
	ledger Ledger
	path   string
}

func NewCodec(ledger Ledger, path string) *Codec {
	return &Codec{ledger: ledger, path: path}
}

// Export writes the full collection as a JSON document and returns the
// number of exported records. An empty store is a reported error and
// writes nothing.
func (c *Codec) Export(ctx context.Context) (int, error) {
	txs := c.ledger.All()
	if len(txs) == 0 {
		return 0, ErrNothingToExport
	}

	data, err := core.EncodeTransactions(txs)
	if err != nil {
		return 0, fmt.Errorf("encode backup: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return 0, fmt.Errorf("write backup file: %w", err)
	}

	slog.InfoContext(ctx, "Backup exported", "path", c.path, "count", len(txs))
	return len(txs), nil
}

// Import restores the backup document, replacing the whole collection.
// Defective records are skipped individually; defective fields inside a
// structurally complete record fall back to defaults, except amount,
// which has no safe fallback and drops the record.
func (c *Codec) Import(ctx context.Context) (ImportSummary, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return ImportSummary{}, ErrNoBackupFound
	}
	if err != nil {
		return ImportSummary{}, fmt.Errorf("read backup file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return ImportSummary{}, ErrInvalidFormat
	}

	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(rawRecords) == 0 {
		return ImportSummary{}, ErrEmptyBackup
	}

	var summary ImportSummary
	txs := make([]core.Transaction, 0, len(rawRecords))
	for i, raw := range rawRecords {
		tx, fallbacks, ok := decodeRecord(i, raw)
		if !ok {
			summary.Skipped++
			slog.WarnContext(ctx, "Skipping unreadable backup record", "index", i)
			continue
		}
		summary.Fallbacks = append(summary.Fallbacks, fallbacks...)
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return ImportSummary{}, ErrNoValidTransactions
	}

	if err := c.ledger.ReplaceAll(ctx, txs); err != nil {
		return ImportSummary{}, fmt.Errorf("replace transactions: %w", err)
	}

	summary.Imported = len(txs)
	slog.InfoContext(ctx, "Backup imported",
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"fallbacks", len(summary.Fallbacks))
	return summary, nil
}

// decodeRecord parses one array element. A record that is not an object
// or is missing any required field is rejected outright; within a
// complete record each field degrades independently.
func decodeRecord(index int, raw json.RawMessage) (core.Transaction, []FieldFallback, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return core.Transaction{}, nil, false
	}
	for _, required := range []string{"id", "title", "amount", "category", "date", "isIncome"} {
		if _, ok := fields[required]; !ok {
			return core.Transaction{}, nil, false
		}
	}

	// Amount first: it is the one field without a fallback.
	var amount core.Money
	if err := json.Unmarshal(fields["amount"], &amount); err != nil || amount.Cents <= 0 {
		return core.Transaction{}, nil, false
	}

	var fallbacks []FieldFallback
	note := func(f FallbackField) {
		fallbacks = append(fallbacks, FieldFallback{Record: index, Field: f})
	}

	var tx core.Transaction
	tx.Amount = amount

	var id string
	if err := json.Unmarshal(fields["id"], &id); err != nil || id == "" {
		id = uuid.NewString()
		note(FieldID)
	}
	tx.ID = id

	var title string
	if err := json.Unmarshal(fields["title"], &title); err != nil || strings.TrimSpace(title) == "" {
		title = fallbackTitle
		note(FieldTitle)
	}
	tx.Title = title

	var category string
	if err := json.Unmarshal(fields["category"], &category); err != nil || strings.TrimSpace(category) == "" {
		category = fallbackCategory
		note(FieldCategory)
	}
	tx.Category = category

	var dateStr string
	if err := json.Unmarshal(fields["date"], &dateStr); err != nil {
		tx.Date = time.Now()
		note(FieldDate)
	} else if date, err := core.ParseDate(dateStr); err != nil {
		tx.Date = time.Now()
		note(FieldDate)
	} else {
		tx.Date = date
	}

	var isIncome bool
	if err := json.Unmarshal(fields["isIncome"], &isIncome); err != nil {
		isIncome = false
		note(FieldIsIncome)
	}
	tx.IsIncome = isIncome

	return tx, fallbacks, true
}
