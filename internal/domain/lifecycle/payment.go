package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus summarises how much of an order has been paid.
// The empty value means the order total is not known.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentFullyPaid     PaymentStatus = "fully_paid"
	PaymentOverpaid      PaymentStatus = "overpaid"
	PaymentUnknown       PaymentStatus = ""
)

// PaymentFacts are the payment fields of an order record. Nil means the
// field is absent on the record.
type PaymentFacts struct {
	TotalAmount     *decimal.Decimal
	ConfirmedAmount *decimal.Decimal
	ConfirmedAt     *time.Time
}

// paid returns the confirmed amount when a positive one is recorded.
func (p PaymentFacts) paid() (decimal.Decimal, bool) {
	if p.ConfirmedAmount == nil || !p.ConfirmedAmount.IsPositive() {
		return decimal.Zero, false
	}
	return *p.ConfirmedAmount, true
}

// HasPartialPayment holds iff a confirmation timestamp exists and
// 0 < confirmed < total.
func (p PaymentFacts) HasPartialPayment() bool {
	if p.ConfirmedAt == nil || p.TotalAmount == nil {
		return false
	}
	paid, ok := p.paid()
	return ok && paid.LessThan(*p.TotalAmount)
}

// BalanceRemaining is total minus confirmed. ok is false when the total is missing.
func (p PaymentFacts) BalanceRemaining() (balance decimal.Decimal, ok bool) {
	if p.TotalAmount == nil {
		return decimal.Zero, false
	}
	paid, _ := p.paid()
	return p.TotalAmount.Sub(paid), true
}

// Status classifies the payment state against the order total.
func (p PaymentFacts) Status() PaymentStatus {
	if p.TotalAmount == nil {
		return PaymentUnknown
	}
	paid, ok := p.paid()
	switch {
	case !ok:
		return PaymentUnpaid
	case paid.LessThan(*p.TotalAmount):
		return PaymentPartiallyPaid
	case paid.Equal(*p.TotalAmount):
		return PaymentFullyPaid
	default:
		return PaymentOverpaid
	}
}

// FullyPaid reports whether the confirmed amount covers the total.
func (p PaymentFacts) FullyPaid() bool {
	s := p.Status()
	return s == PaymentFullyPaid || s == PaymentOverpaid
}
