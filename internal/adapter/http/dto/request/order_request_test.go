package request

import (
	"errors"
	"testing"

	"trade_portal/internal/domain/lifecycle"
)

func strPtr(s string) *string { return &s }

func TestOrderPatchRequest_ToPatch(t *testing.T) {
	r := OrderPatchRequest{
		Status:                 strPtr(" shipped "),
		PaymentAmountConfirmed: strPtr("250.75"),
		Carrier:                strPtr(" DHL "),
	}
	p, err := r.ToPatch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status == nil || *p.Status != lifecycle.OrderStatusShipped {
		t.Fatalf("unexpected status: %v", p.Status)
	}
	if p.PaymentAmountConfirmed == nil || p.PaymentAmountConfirmed.String() != "250.75" {
		t.Fatalf("unexpected amount: %v", p.PaymentAmountConfirmed)
	}
	if p.Carrier == nil || *p.Carrier != "DHL" {
		t.Fatalf("unexpected carrier: %v", p.Carrier)
	}
	if p.TrackingNumber != nil || p.DeliveryAddressID != nil {
		t.Fatalf("omitted fields must stay nil: %+v", p)
	}

	if _, err := (OrderPatchRequest{PaymentAmountConfirmed: strPtr("-1")}).ToPatch(); !errors.Is(err, ErrInvalidAmountValue) {
		t.Fatalf("expected ErrInvalidAmountValue, got %v", err)
	}
	if p, _ := (OrderPatchRequest{}).ToPatch(); !p.Empty() {
		t.Fatalf("expected empty patch")
	}
}

func TestPaymentVerificationRequest_ResolveAmount(t *testing.T) {
	d, err := PaymentVerificationRequest{Amount: " 600.00 "}.ResolveAmount()
	if err != nil || d.StringFixed(2) != "600.00" {
		t.Fatalf("unexpected result: %v %v", d, err)
	}

	for _, raw := range []string{"", "0", "abc", "-5"} {
		if _, err := (PaymentVerificationRequest{Amount: raw}).ResolveAmount(); !errors.Is(err, ErrInvalidAmountValue) {
			t.Fatalf("%q: expected ErrInvalidAmountValue, got %v", raw, err)
		}
	}
}
