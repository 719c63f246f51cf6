package response

import (
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"
)

type QuoteResponse struct {
	ID            string                 `json:"id"`
	CustomerID    string                 `json:"customer_id"`
	Reference     string                 `json:"reference"`
	Status        string                 `json:"status"`
	Badge         lifecycle.Badge        `json:"badge"`
	Actions       lifecycle.QuoteActions `json:"actions"`
	Currency      string                 `json:"currency,omitempty"`
	TotalAmount   string                 `json:"total_amount,omitempty"`
	Lines         []QuoteLineResponse    `json:"lines"`
	HasDocument   bool                   `json:"has_document"`
	ValidUntil    *time.Time             `json:"valid_until,omitempty"`
	SourceOrderID string                 `json:"source_order_id,omitempty"`
	DeclineReason string                 `json:"decline_reason,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type QuoteLineResponse struct {
	ProductID   string `json:"product_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

func FromQuote(q entities.Quote, v View) QuoteResponse {
	facts := q.Facts(v.Now)
	res := QuoteResponse{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		Reference:  q.Reference,
		Status:     string(q.Status),
		Badge: lifecycle.RenderQuoteBadge(string(q.Status), lifecycle.BadgeOptions{
			Variant:  v.Variant,
			Audience: v.Audience,
		}),
		Actions:       lifecycle.EvaluateQuote(facts),
		Currency:      q.Currency,
		TotalAmount:   money(q.TotalAmount),
		Lines:         make([]QuoteLineResponse, 0, len(q.Lines)),
		HasDocument:   facts.HasDocument,
		ValidUntil:    q.ValidUntil,
		SourceOrderID: q.SourceOrderID,
		DeclineReason: q.DeclineReason,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	for _, l := range q.Lines {
		res.Lines = append(res.Lines, QuoteLineResponse{ProductID: l.ProductID, Description: l.Description, Quantity: l.Quantity})
	}
	return res
}

func FromQuotes(quotes []entities.Quote, v View) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q, v))
	}
	return out
}
