package amqp

import (
	"encoding/json"
	"time"

	"dashboard/internal/core"
)

// InvoiceUpdatedMessage is published after an invoice edit is persisted.
// It carries the full new values so consumers need no database access.
type InvoiceUpdatedMessage struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewInvoiceUpdatedMessage creates a message for inv stamped with the current time.
func NewInvoiceUpdatedMessage(inv core.Invoice) *InvoiceUpdatedMessage {
	return &InvoiceUpdatedMessage{
		ID:          inv.ID,
		CustomerID:  inv.CustomerID,
		AmountCents: inv.Amount.Cents,
		Status:      inv.Status.String(),
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *InvoiceUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InvoiceUpdatedMessageFromJSON(data []byte) (*InvoiceUpdatedMessage, error) {
	var msg InvoiceUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
