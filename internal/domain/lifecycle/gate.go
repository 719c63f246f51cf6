package lifecycle

import "time"

// OrderActions lists which customer actions are currently legal for an order.
// Missing context always resolves to false.
type OrderActions struct {
	UploadPaymentProof bool   `json:"upload_payment_proof"`
	AddDeliveryAddress bool   `json:"add_delivery_address"`
	ReportIssue        bool   `json:"report_issue"`
	TrackShipment      bool   `json:"track_shipment"`
	Reorder            bool   `json:"reorder"`
	TrackingMessage    string `json:"tracking_message,omitempty"`
}

// EvaluateOrder runs every order rule.
func EvaluateOrder(f OrderFacts) OrderActions {
	tracking := TrackShipment(f)
	return OrderActions{
		UploadPaymentProof: CanUploadPaymentProof(f),
		AddDeliveryAddress: CanAddDeliveryAddress(f),
		ReportIssue:        CanReportIssue(f),
		TrackShipment:      tracking.Allowed,
		Reorder:            CanReorder(f),
		TrackingMessage:    tracking.Message,
	}
}

// CanUploadPaymentProof allows proofs, balance payments included, until the
// order is fully paid. A missing total blocks the upload.
func CanUploadPaymentProof(f OrderFacts) bool {
	if !f.Status.In(OrderStatusOrderConfirmed, OrderStatusPendingPayment) {
		return false
	}
	if f.ProofPending {
		return false
	}
	total := f.Payment.TotalAmount
	if total == nil || !total.IsPositive() {
		return false
	}
	paid, ok := f.Payment.paid()
	if !ok {
		return true
	}
	return paid.LessThan(*total)
}

func CanAddDeliveryAddress(f OrderFacts) bool {
	if f.DeliveryAddressID != "" {
		return false
	}
	return f.Status.In(OrderStatusPaymentReceived, OrderStatusProcessing)
}

func CanReportIssue(f OrderFacts) bool {
	return f.Status.In(OrderStatusShipped, OrderStatusDelivered, OrderStatusDeliveryFailed)
}

func CanReorder(f OrderFacts) bool {
	return f.LineItemCount > 0
}

// TrackingDecision carries a reason whenever tracking is not available yet.
type TrackingDecision struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}

var trackingMessages = map[OrderStatus]string{
	OrderStatusOrderConfirmed:  "Tracking will be available once your payment is confirmed and the order ships.",
	OrderStatusPendingPayment:  "Tracking will be available once your payment is confirmed and the order ships.",
	OrderStatusPaymentReceived: "Your order is being prepared. Tracking will be available once it ships.",
	OrderStatusProcessing:      "Your order is being prepared. Tracking will be available once it ships.",
	OrderStatusReadyToShip:     "Your order is packed and waiting for the carrier to pick it up.",
	OrderStatusDeliveryFailed:  "Delivery failed. Report an issue so we can arrange redelivery.",
	OrderStatusCancelled:       "This order was cancelled and will not ship.",
}

const trackingUnavailable = "Tracking is not available for this order."

func TrackShipment(f OrderFacts) TrackingDecision {
	if f.Status.In(OrderStatusShipped, OrderStatusDelivered) {
		return TrackingDecision{Allowed: true}
	}
	if msg, ok := trackingMessages[f.Status]; ok {
		return TrackingDecision{Message: msg}
	}
	return TrackingDecision{Message: trackingUnavailable}
}

// QuoteFacts is the per-quote input of the quote gate.
type QuoteFacts struct {
	Status      QuoteStatus
	HasDocument bool
	ValidUntil  *time.Time
	Now         time.Time
}

type QuoteActions struct {
	Accept  bool `json:"accept"`
	Decline bool `json:"decline"`
}

func EvaluateQuote(f QuoteFacts) QuoteActions {
	return QuoteActions{Accept: CanAcceptQuote(f), Decline: CanDeclineQuote(f)}
}

// CanAcceptQuote requires a priced quote with its document, still valid.
func CanAcceptQuote(f QuoteFacts) bool {
	return quoteDecidable(f)
}

// CanDeclineQuote follows the same rule as CanAcceptQuote.
func CanDeclineQuote(f QuoteFacts) bool {
	return quoteDecidable(f)
}

func quoteDecidable(f QuoteFacts) bool {
	if f.Status != QuoteStatusQuoted || !f.HasDocument {
		return false
	}
	if f.ValidUntil != nil && !f.Now.IsZero() && f.Now.After(*f.ValidUntil) {
		return false
	}
	return true
}
