package response

import (
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

// View selects how a record is presented.
type View struct {
	Audience lifecycle.Audience
	Variant  lifecycle.Variant
	Now      time.Time
}

type OrderResponse struct {
	ID          string                 `json:"id"`
	OrderNumber string                 `json:"order_number"`
	CustomerID  string                 `json:"customer_id"`
	QuoteID     string                 `json:"quote_id,omitempty"`
	Status      string                 `json:"status"`
	Badge       lifecycle.Badge        `json:"badge"`
	Actions     lifecycle.OrderActions `json:"actions"`

	Currency               string                  `json:"currency"`
	TotalAmount            string                  `json:"total_amount,omitempty"`
	PaymentAmountConfirmed string                  `json:"payment_amount_confirmed,omitempty"`
	BalanceRemaining       string                  `json:"balance_remaining,omitempty"`
	PaymentStatus          string                  `json:"payment_status,omitempty"`
	PaymentConfirmedAt     *time.Time              `json:"payment_confirmed_at,omitempty"`
	PaymentProof           *PaymentProofResponse   `json:"payment_proof,omitempty"`
	DeliveryAddressID      string                  `json:"delivery_address_id,omitempty"`
	Carrier                string                  `json:"carrier,omitempty"`
	TrackingNumber         string                  `json:"tracking_number,omitempty"`
	LineItems              []LineItemResponse      `json:"line_items"`
	Issues                 []DeliveryIssueResponse `json:"issues,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentProofResponse omits expires_at for proofs stored without an expiry.
// Path is only exposed to staff.
type PaymentProofResponse struct {
	Status     string     `json:"status"`
	UploadedAt time.Time  `json:"uploaded_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Path       string     `json:"path,omitempty"`
}

type LineItemResponse struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type DeliveryIssueResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}

// FromOrder renders o with its badge and the customer actions legal right now.
// Carrier data is hidden from customers until tracking is allowed.
func FromOrder(o entities.Order, v View) OrderResponse {
	facts := o.Facts(v.Now)
	bc := lifecycle.NewBlockerContext(facts)
	actions := lifecycle.EvaluateOrder(facts)
	internal := v.Audience == lifecycle.AudienceInternal

	res := OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		QuoteID:     o.QuoteID,
		Status:      string(o.Status),
		Badge: lifecycle.RenderOrderBadge(string(o.Status), lifecycle.BadgeOptions{
			Variant:  v.Variant,
			Audience: v.Audience,
			Context:  &bc,
		}),
		Actions:                actions,
		Currency:               o.Currency,
		TotalAmount:            money(o.TotalAmount),
		PaymentAmountConfirmed: money(o.PaymentAmountConfirmed),
		PaymentStatus:          string(facts.Payment.Status()),
		PaymentConfirmedAt:     o.PaymentConfirmedAt,
		DeliveryAddressID:      o.DeliveryAddressID,
		LineItems:              make([]LineItemResponse, 0, len(o.LineItems)),
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	if bc.BalanceRemaining != nil {
		res.BalanceRemaining = bc.BalanceRemaining.StringFixed(2)
	}
	if actions.TrackShipment || internal {
		res.Carrier = o.Carrier
		res.TrackingNumber = o.TrackingNumber
	}
	if o.PaymentProof != nil {
		res.PaymentProof = &PaymentProofResponse{
			Status:     string(o.PaymentProof.Status),
			UploadedAt: o.PaymentProof.UploadedAt,
		}
		if exp := o.PaymentProof.ExpiresAt; !exp.IsZero() {
			res.PaymentProof.ExpiresAt = &exp
		}
		if internal {
			res.PaymentProof.Path = o.PaymentProof.Path
		}
	}
	for _, li := range o.LineItems {
		res.LineItems = append(res.LineItems, LineItemResponse{
			ProductID:   li.ProductID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.StringFixed(2),
		})
	}
	for _, is := range o.Issues {
		res.Issues = append(res.Issues, DeliveryIssueResponse{
			ID:          is.ID,
			Category:    is.Category,
			Description: is.Description,
			ReportedAt:  is.ReportedAt,
		})
	}
	return res
}

func FromOrders(orders []entities.Order, v View) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o, v))
	}
	return out
}

func money(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
