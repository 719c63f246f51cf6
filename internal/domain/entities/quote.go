package entities

import (
	"time"

	"trade_portal/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

// Quote is a customer quote request and, once priced, the quote itself.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_id-index): customer_id
type Quote struct {
	ID          string                `json:"id"`
	CustomerID  string                `json:"customer_id"`
	Reference   string                `json:"reference"`
	Status      lifecycle.QuoteStatus `json:"status"`
	Currency    string                `json:"currency,omitempty"`
	TotalAmount *decimal.Decimal      `json:"total_amount,omitempty"`
	Lines       []QuoteLine           `json:"lines"`
	Document    *QuoteDocument        `json:"document,omitempty"`
	ValidUntil  *time.Time            `json:"valid_until,omitempty"`
	// SourceOrderID is set on quotes created by a reorder.
	SourceOrderID string    `json:"source_order_id,omitempty"`
	DeclineReason string    `json:"decline_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type QuoteLine struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// QuoteDocument is the generated PDF for a priced quote.
type QuoteDocument struct {
	Bucket      string    `json:"bucket"`
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (q Quote) Facts(now time.Time) lifecycle.QuoteFacts {
	return lifecycle.QuoteFacts{
		Status:      q.Status,
		HasDocument: q.Document != nil && q.Document.Path != "",
		ValidUntil:  q.ValidUntil,
		Now:         now,
	}
}
