package interfaces

import (
	"context"
	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// The portal must be able to:
//   - list and read quotes for a customer
//   - create a pending quote request (reorder)
//   - record the customer's accept/decline decision, only while the quote is
//     still in the status it was read with (ErrConcurrentUpdate otherwise)

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, from, to lifecycle.QuoteStatus, declineReason string) (entities.Quote, error)
}
