package response

import (
	"encoding/json"
	"time"

	"trade_portal/internal/usecase"
)

type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TrackingResponse struct {
	Allowed        bool   `json:"allowed"`
	Message        string `json:"message,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func FromTracking(t usecase.Tracking) TrackingResponse {
	return TrackingResponse{
		Allowed:        t.Allowed,
		Message:        t.Message,
		Carrier:        t.Carrier,
		TrackingNumber: t.TrackingNumber,
	}
}

type OnlinePaymentResponse struct {
	ProviderPaymentID string          `json:"provider_payment_id"`
	ProviderStatus    string          `json:"provider_status"`
	Amount            string          `json:"amount"`
	Order             OrderResponse   `json:"order"`
	ProviderResponse  json.RawMessage `json:"provider_response,omitempty"`
}

func FromOnlinePayment(p usecase.OnlinePayment, v View) OnlinePaymentResponse {
	return OnlinePaymentResponse{
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		Amount:            p.Amount.StringFixed(2),
		Order:             FromOrder(p.Order, v),
		ProviderResponse:  p.ProviderResponse,
	}
}
