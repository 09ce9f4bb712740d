package amqp

import (
	"encoding/json"
	"time"

	"tracker/internal/core"
)

// LedgerEventMessage is the wire form of a core.LedgerEvent. Amounts are
// decimal strings with two fractional digits.
type LedgerEventMessage struct {
	Type      core.EventType `json:"type"`
	Name      string         `json:"name,omitempty"`
	Amount    string         `json:"amount,omitempty"`
	Count     int            `json:"count"`
	Total     string         `json:"total"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewLedgerEventMessage(ev core.LedgerEvent, at time.Time) *LedgerEventMessage {
	msg := &LedgerEventMessage{
		Type:      ev.Type,
		Count:     ev.Count,
		Total:     ev.Total.String(),
		Timestamp: at.UTC(),
	}
	if ev.Expense != nil {
		msg.Name = ev.Expense.Name
		msg.Amount = ev.Expense.Amount.String()
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
