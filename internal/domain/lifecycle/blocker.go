package lifecycle

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderFacts is the per-order input of the badge blockers and the action gate.
// It is derived from the latest fetched record and never stored.
type OrderFacts struct {
	Status            OrderStatus
	Payment           PaymentFacts
	ProofPending      bool
	DeliveryAddressID string
	Currency          string
	LineItemCount     int
}

// BlockerContext explains why an order is stuck at its current status.
type BlockerContext struct {
	Status             OrderStatus
	PaymentStatus      PaymentStatus
	BalanceRemaining   *decimal.Decimal
	HasDeliveryAddress bool
	Currency           string
}

// NewBlockerContext derives the blocker context from order facts.
func NewBlockerContext(f OrderFacts) BlockerContext {
	bc := BlockerContext{
		Status:             f.Status,
		PaymentStatus:      f.Payment.Status(),
		HasDeliveryAddress: strings.TrimSpace(f.DeliveryAddressID) != "",
		Currency:           f.Currency,
	}
	if balance, ok := f.Payment.BalanceRemaining(); ok {
		bc.BalanceRemaining = &balance
	}
	return bc
}

type blockerRule struct {
	name  string
	match func(bc BlockerContext) (string, bool)
}

// blockerRules are evaluated top to bottom; the first match wins.
var blockerRules = []blockerRule{
	{
		name: "balance_due",
		match: func(bc BlockerContext) (string, bool) {
			if !bc.Status.In(OrderStatusOrderConfirmed, OrderStatusPendingPayment) {
				return "", false
			}
			if bc.PaymentStatus != PaymentPartiallyPaid || bc.BalanceRemaining == nil || !bc.BalanceRemaining.IsPositive() {
				return "", false
			}
			return "Waiting on balance payment of " + FormatAmount(bc.Currency, *bc.BalanceRemaining), true
		},
	},
	{
		name: "payment_due",
		match: func(bc BlockerContext) (string, bool) {
			if !bc.Status.In(OrderStatusOrderConfirmed, OrderStatusPendingPayment) {
				return "", false
			}
			if bc.PaymentStatus != PaymentUnpaid && bc.PaymentStatus != PaymentUnknown {
				return "", false
			}
			return "Waiting on payment before the order can be processed", true
		},
	},
	{
		name: "address_missing",
		match: func(bc BlockerContext) (string, bool) {
			if !bc.Status.In(OrderStatusPaymentReceived, OrderStatusProcessing, OrderStatusReadyToShip) || bc.HasDeliveryAddress {
				return "", false
			}
			return "Delivery address required before shipment", true
		},
	},
}

// Blocker returns the first matching blocker sentence, or "" when nothing blocks progress.
func (bc BlockerContext) Blocker() string {
	for _, r := range blockerRules {
		if msg, ok := r.match(bc); ok {
			return msg
		}
	}
	return ""
}

// FormatAmount renders "USD 600.00". The currency is omitted when unknown.
func FormatAmount(currency string, amount decimal.Decimal) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}
