package core

import (
	"encoding/json"
	"fmt"
)

// TransactionRecord is the persisted JSON shape of a transaction, shared
// by the preference blob and the backup document.
type TransactionRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   Money  `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	IsIncome bool   `json:"isIncome"`
}

// ToRecord converts a transaction to its persisted shape.
func (t Transaction) ToRecord() TransactionRecord {
	return TransactionRecord{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     FormatDate(t.Date),
		IsIncome: t.IsIncome,
	}
}

// Transaction converts a record back into the domain type. The date must
// be in the fixed persisted format.
func (r TransactionRecord) Transaction() (Transaction, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Transaction{}, fmt.Errorf("parse date %q: %w", r.Date, err)
	}
	return Transaction{
		ID:       r.ID,
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
		Date:     date,
		IsIncome: r.IsIncome,
	}, nil
}

// EncodeTransactions serializes the full list as a JSON array.
func EncodeTransactions(txs []Transaction) ([]byte, error) {
	records := make([]TransactionRecord, len(txs))
	for i, t := range txs {
		records[i] = t.ToRecord()
	}
	return json.Marshal(records)
}

// DecodeTransactions is the strict decoder used for the preference blob.
// Any defect fails the whole document; the caller decides the fallback.
func DecodeTransactions(data []byte) ([]Transaction, error) {
	var records []TransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	txs := make([]Transaction, 0, len(records))
	for _, r := range records {
		t, err := r.Transaction()
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}
