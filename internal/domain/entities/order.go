package entities

import (
	"time"

	"trade_portal/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

// Order is a customer order persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_id-index): customer_id
//
// Monetary representation:
//   - Amounts are decimals stored as strings. Nil means the field is not set yet.
type Order struct {
	ID          string                `json:"id"`
	OrderNumber string                `json:"order_number"`
	CustomerID  string                `json:"customer_id"`
	QuoteID     string                `json:"quote_id,omitempty"`
	Status      lifecycle.OrderStatus `json:"status"`
	Currency    string                `json:"currency"`

	TotalAmount            *decimal.Decimal `json:"total_amount,omitempty"`
	PaymentAmountConfirmed *decimal.Decimal `json:"payment_amount_confirmed,omitempty"`
	PaymentConfirmedAt     *time.Time       `json:"payment_confirmed_at,omitempty"`
	PaymentProof           *PaymentProof    `json:"payment_proof,omitempty"`

	DeliveryAddressID string `json:"delivery_address_id,omitempty"`
	Carrier           string `json:"carrier,omitempty"`
	TrackingNumber    string `json:"tracking_number,omitempty"`

	LineItems []LineItem      `json:"line_items"`
	Issues    []DeliveryIssue `json:"issues,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Version is incremented by every portal write. Records written
	// elsewhere may not carry one yet (0).
	Version int64 `json:"version"`
}

type LineItem struct {
	ProductID   string          `json:"product_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DeliveryIssue is a problem reported by the customer after shipment.
type DeliveryIssue struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}

// Facts derives the action gate input from the record.
func (o Order) Facts(now time.Time) lifecycle.OrderFacts {
	return lifecycle.OrderFacts{
		Status: o.Status,
		Payment: lifecycle.PaymentFacts{
			TotalAmount:     o.TotalAmount,
			ConfirmedAmount: o.PaymentAmountConfirmed,
			ConfirmedAt:     o.PaymentConfirmedAt,
		},
		ProofPending:      o.PaymentProof.AwaitingVerification(now),
		DeliveryAddressID: o.DeliveryAddressID,
		Currency:          o.Currency,
		LineItemCount:     len(o.LineItems),
	}
}

// OrderPatch holds the fields updateOrder may change. Nil fields are left untouched.
type OrderPatch struct {
	Status                 *lifecycle.OrderStatus
	PaymentAmountConfirmed *decimal.Decimal
	PaymentConfirmedAt     *time.Time
	PaymentProof           *PaymentProof
	DeliveryAddressID      *string
	Carrier                *string
	TrackingNumber         *string
	AppendIssue            *DeliveryIssue

	// IfVersion makes the write conditional on the stored version.
	IfVersion *int64
}

// Empty reports whether the patch changes nothing. IfVersion is a guard, not a change.
func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.PaymentAmountConfirmed == nil && p.PaymentConfirmedAt == nil &&
		p.PaymentProof == nil && p.DeliveryAddressID == nil && p.Carrier == nil &&
		p.TrackingNumber == nil && p.AppendIssue == nil
}

// Guarded returns p conditioned on the version o was read with.
func (p OrderPatch) Guarded(o Order) OrderPatch {
	v := o.Version
	p.IfVersion = &v
	return p
}
