package amqp

import (
	"encoding/json"
	"time"
)

// MessageKind discriminates the messages sharing the alert queue.
type MessageKind string

const (
	KindBudgetAlert   MessageKind = "budget_alert"
	KindDailyReminder MessageKind = "daily_reminder"
)

// envelope is the minimal shape peeked at before dispatching a delivery.
type envelope struct {
	Kind MessageKind `json:"kind"`
}

// BudgetAlertMessage tells the notification worker that spending crossed
// the configured threshold.
type BudgetAlertMessage struct {
	Kind         MessageKind `json:"kind"`
	UsagePercent int         `json:"usagePercent"`
	Threshold    int         `json:"threshold"`
	SpentCents   int64       `json:"spentCents"`
	BudgetCents  int64       `json:"budgetCents"`
	Currency     string      `json:"currency"`
	Timestamp    time.Time   `json:"timestamp"`
}

func NewBudgetAlertMessage(usagePercent, threshold int, spentCents, budgetCents int64, currency string) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Kind:         KindBudgetAlert,
		UsagePercent: usagePercent,
		Threshold:    threshold,
		SpentCents:   spentCents,
		BudgetCents:  budgetCents,
		Currency:     currency,
		Timestamp:    time.Now(),
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DailyReminderMessage asks the worker to deliver the daily entry
// reminder.
type DailyReminderMessage struct {
	Kind      MessageKind `json:"kind"`
	Hour      int         `json:"hour"`
	Minute    int         `json:"minute"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewDailyReminderMessage(hour, minute int) *DailyReminderMessage {
	return &DailyReminderMessage{
		Kind:      KindDailyReminder,
		Hour:      hour,
		Minute:    minute,
		Timestamp: time.Now(),
	}
}

func (m *DailyReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DailyReminderMessageFromJSON(data []byte) (*DailyReminderMessage, error) {
	var msg DailyReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
