package interfaces

import (
	"context"
	"errors"
	"trade_portal/internal/domain/entities"
)

// ErrConcurrentUpdate is returned by conditional writes when the stored
// record changed after it was read.
var ErrConcurrentUpdate = errors.New("record changed since it was read")

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// A zero-value Order with a nil error means the record does not exist.
// Update with patch.IfVersion set fails with ErrConcurrentUpdate when the
// stored version differs.

type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error)
	Update(ctx context.Context, id string, patch entities.OrderPatch) (entities.Order, error)
}
