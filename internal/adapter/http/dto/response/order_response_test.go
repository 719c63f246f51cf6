package response

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestFromOrder_PartialPayment(t *testing.T) {
	paidAt := now.Add(-time.Hour)
	o := entities.Order{
		ID:                     "ord-1",
		OrderNumber:            "SO-1001",
		Status:                 lifecycle.OrderStatusPendingPayment,
		Currency:               "usd",
		TotalAmount:            amount("1000"),
		PaymentAmountConfirmed: amount("400"),
		PaymentConfirmedAt:     &paidAt,
		Carrier:                "DHL",
		TrackingNumber:         "JD0001",
		LineItems:              []entities.LineItem{{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.RequireFromString("12.5")}},
	}

	res := FromOrder(o, View{Audience: lifecycle.AudienceCustomer, Now: now})

	if res.TotalAmount != "1000.00" || res.BalanceRemaining != "600.00" || res.PaymentStatus != "partially_paid" {
		t.Fatalf("unexpected amounts: %+v", res)
	}
	if res.Badge.Tooltip == nil || res.Badge.Tooltip.Blocker != "Waiting on balance payment of USD 600.00" {
		t.Fatalf("unexpected badge: %+v", res.Badge)
	}
	if !res.Actions.UploadPaymentProof || res.Actions.TrackShipment {
		t.Fatalf("unexpected actions: %+v", res.Actions)
	}
	if res.Carrier != "" || res.TrackingNumber != "" {
		t.Fatalf("carrier data must stay hidden before shipment: %+v", res)
	}
	if len(res.LineItems) != 1 || res.LineItems[0].UnitPrice != "12.50" {
		t.Fatalf("unexpected line items: %+v", res.LineItems)
	}
}

func TestFromOrder_InternalCompact(t *testing.T) {
	o := entities.Order{
		ID:           "ord-2",
		Status:       lifecycle.OrderStatusReadyToShip,
		Carrier:      "DHL",
		PaymentProof: &entities.PaymentProof{Path: "cust-1/ord-2/p.pdf", Status: entities.ProofStatusApproved},
	}

	res := FromOrder(o, View{Audience: lifecycle.AudienceInternal, Variant: lifecycle.VariantCompact, Now: now})

	if res.Badge.Label != "Ready to Ship" || res.Badge.Icon != "" || res.Badge.Animated {
		t.Fatalf("unexpected badge: %+v", res.Badge)
	}
	if res.Badge.Tooltip == nil || res.Badge.Tooltip.Blocker != "Delivery address required before shipment" {
		t.Fatalf("unexpected tooltip: %+v", res.Badge.Tooltip)
	}
	if res.Carrier != "DHL" || res.PaymentProof == nil || res.PaymentProof.Path == "" {
		t.Fatalf("staff should see carrier and proof path: %+v", res)
	}

	customer := FromOrder(o, View{Audience: lifecycle.AudienceCustomer, Now: now})
	if customer.Badge.Label != "Processing" || customer.PaymentProof.Path != "" {
		t.Fatalf("unexpected customer view: %+v", customer)
	}
}

func TestFromOrder_PaymentProofExpiry(t *testing.T) {
	expires := now.Add(72 * time.Hour)
	withExpiry := FromOrder(entities.Order{
		ID:           "ord-3",
		Status:       lifecycle.OrderStatusPendingPayment,
		PaymentProof: &entities.PaymentProof{Status: entities.ProofStatusPending, UploadedAt: now, ExpiresAt: expires},
	}, View{Now: now})
	if withExpiry.PaymentProof.ExpiresAt == nil || !withExpiry.PaymentProof.ExpiresAt.Equal(expires) {
		t.Fatalf("expected expiry, got %v", withExpiry.PaymentProof.ExpiresAt)
	}

	legacy := FromOrder(entities.Order{
		ID:           "ord-4",
		Status:       lifecycle.OrderStatusPendingPayment,
		PaymentProof: &entities.PaymentProof{Status: entities.ProofStatusPending, UploadedAt: now},
	}, View{Now: now})
	body, err := json.Marshal(legacy.PaymentProof)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), "expires_at") {
		t.Fatalf("expires_at should be omitted: %s", body)
	}
}

func TestFromOrder_UnknownStatus(t *testing.T) {
	res := FromOrder(entities.Order{ID: "ord-3", Status: lifecycle.ParseOrderStatus("on_hold")}, View{Now: now})
	if res.Status != "unknown" || res.Badge.VisualClass != lifecycle.VisualNeutral {
		t.Fatalf("unexpected fallback: %+v", res)
	}
	if res.TotalAmount != "" || res.BalanceRemaining != "" || res.Actions.UploadPaymentProof {
		t.Fatalf("missing totals must fail closed: %+v", res)
	}
	if res.LineItems == nil {
		t.Fatalf("line items should render as an empty list")
	}
}

func TestFromQuote(t *testing.T) {
	validUntil := now.Add(24 * time.Hour)
	q := entities.Quote{
		ID:          "q-1",
		Status:      lifecycle.QuoteStatusQuoted,
		TotalAmount: amount("2450"),
		Document:    &entities.QuoteDocument{Path: "cust-1/q-1.pdf"},
		ValidUntil:  &validUntil,
		Lines:       []entities.QuoteLine{{ProductID: "p-1", Quantity: 3}},
	}

	res := FromQuote(q, View{Now: now})
	if !res.Actions.Accept || !res.Actions.Decline || !res.HasDocument {
		t.Fatalf("unexpected actions: %+v", res)
	}
	if res.Badge.Label != "Quote Ready" || res.TotalAmount != "2450.00" {
		t.Fatalf("unexpected quote: %+v", res)
	}

	expired := FromQuote(q, View{Now: validUntil.Add(time.Minute)})
	if expired.Actions.Accept || expired.Actions.Decline {
		t.Fatalf("expired quote should not be decidable: %+v", expired.Actions)
	}
}

func TestFromTaxonomy(t *testing.T) {
	res := FromTaxonomy(lifecycle.Orders())
	if res.Name != "order" || res.Fallback.Value != "unknown" {
		t.Fatalf("unexpected taxonomy: %+v", res)
	}
	if len(res.FilterOptions) != len(res.Statuses)+1 || res.FilterOptions[0].Value != lifecycle.FilterAll {
		t.Fatalf("unexpected filter options: %+v", res.FilterOptions)
	}
}
