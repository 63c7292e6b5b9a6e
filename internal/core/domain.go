package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	// Transaction is a single ledger record. Sign is carried by IsIncome,
	// Amount is always a positive magnitude.
	Transaction struct {
		ID       string
		Title    string
		Amount   Money
		Category string
		Date     time.Time
		IsIncome bool
	}

	// Budget holds the monthly spending ceiling and alert configuration.
	// A zero Amount means no budget has been configured.
	Budget struct {
		Amount                Money
		Currency              string
		NotificationEnabled   bool
		NotificationThreshold int // percentage, 0-100
	}

	// NotificationSettings configures budget alerts and the daily
	// entry reminder.
	NotificationSettings struct {
		BudgetAlertsEnabled   bool
		BudgetAlertThreshold  int // percentage, 0-100
		DailyRemindersEnabled bool
		ReminderHour          int // 0-23
		ReminderMinute        int // 0-59
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyCategory    = errors.New("empty category")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
	ErrInvalidTime      = errors.New("invalid time of day")
)

// NewTransaction builds a transaction with a freshly assigned id.
func NewTransaction(title string, amount Money, category string, date time.Time, isIncome bool) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
		IsIncome: isIncome,
	}
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (b Budget) Validate() error {
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if b.NotificationThreshold < 0 || b.NotificationThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

// HasBudget reports whether a spending ceiling is configured.
func (b Budget) HasBudget() bool {
	return b.Amount.Cents > 0
}

func (ns NotificationSettings) Validate() error {
	if ns.BudgetAlertThreshold < 0 || ns.BudgetAlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	if ns.ReminderHour < 0 || ns.ReminderHour > 23 {
		return ErrInvalidTime
	}
	if ns.ReminderMinute < 0 || ns.ReminderMinute > 59 {
		return ErrInvalidTime
	}
	return nil
}
