package interfaces

import (
	"context"
	"time"
)

const (
	TableOrders = "orders"
	TableQuotes = "quotes"
)

// Change is a record change notification. Subscribers refetch on receipt;
// the payload carries no record data.
type Change struct {
	Table      string    `json:"table"`
	RecordID   string    `json:"record_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Kind       string    `json:"kind"`
	At         time.Time `json:"at"`
}

// IChangeFeed publishes and subscribes to record change notifications.
type IChangeFeed interface {
	Publish(ctx context.Context, change Change) error
	Subscribe(table string, onChange func(Change)) (unsubscribe func(), err error)
}
