package request

import (
	"encoding/json"
	"errors"
	"strings"

	"trade_portal/internal/domain/entities"
	"trade_portal/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmountValue = errors.New("invalid amount value")
)

// OrderPatchRequest is the staff payload of PATCH /admin/orders/{id}.
// Omitted fields are left untouched.
type OrderPatchRequest struct {
	Status                 *string `json:"status"`
	PaymentAmountConfirmed *string `json:"payment_amount_confirmed"`
	DeliveryAddressID      *string `json:"delivery_address_id"`
	Carrier                *string `json:"carrier"`
	TrackingNumber         *string `json:"tracking_number"`
}

func (r OrderPatchRequest) ToPatch() (entities.OrderPatch, error) {
	var p entities.OrderPatch
	if r.Status != nil {
		s := lifecycle.OrderStatus(strings.TrimSpace(*r.Status))
		p.Status = &s
	}
	if r.PaymentAmountConfirmed != nil {
		d, err := parseAmount(*r.PaymentAmountConfirmed)
		if err != nil {
			return entities.OrderPatch{}, err
		}
		p.PaymentAmountConfirmed = &d
	}
	p.DeliveryAddressID = trimmed(r.DeliveryAddressID)
	p.Carrier = trimmed(r.Carrier)
	p.TrackingNumber = trimmed(r.TrackingNumber)
	return p, nil
}

// PaymentVerificationRequest records a payment confirmed by staff.
type PaymentVerificationRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (r PaymentVerificationRequest) ResolveAmount() (decimal.Decimal, error) {
	d, err := parseAmount(r.Amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidAmountValue
	}
	return d, nil
}

type DeliveryAddressRequest struct {
	DeliveryAddressID string `json:"delivery_address_id" binding:"required"`
}

type DeliveryIssueRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// OnlinePaymentRequest wraps the Mercado Pago payload of a balance payment.
// A bare Mercado Pago payload is accepted too.
type OnlinePaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidAmountValue
	}
	return d, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
