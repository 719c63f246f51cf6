package lifecycle

// OrderStatus is the persisted order lifecycle value. The strings are the
// stored values and must not change.
type OrderStatus string

const (
	OrderStatusOrderConfirmed  OrderStatus = "order_confirmed"
	OrderStatusPendingPayment  OrderStatus = "pending_payment"
	OrderStatusPaymentReceived OrderStatus = "payment_received"
	OrderStatusProcessing      OrderStatus = "processing"
	OrderStatusReadyToShip     OrderStatus = "ready_to_ship"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusDeliveryFailed  OrderStatus = "delivery_failed"
	OrderStatusCancelled       OrderStatus = "cancelled"

	// OrderStatusUnknown absorbs stale or unexpected stored values.
	OrderStatusUnknown OrderStatus = "unknown"
)

var orders = newTaxonomy("order",
	Descriptor{
		Value:         string(OrderStatusUnknown),
		CustomerLabel: "Unknown",
		VisualClass:   VisualNeutral,
		Icon:          IconHelp,
		Stage:         StagePending,
	},
	Descriptor{
		Value:         string(OrderStatusOrderConfirmed),
		CustomerLabel: "Order Confirmed",
		VisualClass:   VisualInfo,
		Icon:          IconCheck,
		Stage:         StagePending,
		CustomerHint:  "Your order is confirmed. Upload your payment proof to get it moving.",
	},
	Descriptor{
		Value:         string(OrderStatusPendingPayment),
		CustomerLabel: "Pending Payment",
		VisualClass:   VisualWarning,
		Icon:          IconCreditCard,
		Stage:         StagePending,
		CustomerHint:  "We are waiting for your payment before we can start processing.",
	},
	Descriptor{
		Value:         string(OrderStatusPaymentReceived),
		CustomerLabel: "Payment Received",
		VisualClass:   VisualSuccess,
		Icon:          IconCheck,
		Stage:         StagePending,
		CustomerHint:  "Payment confirmed. Your order will be processed shortly.",
	},
	Descriptor{
		Value:         string(OrderStatusProcessing),
		CustomerLabel: "Processing",
		VisualClass:   VisualInfo,
		Icon:          IconRefresh,
		Stage:         StageInProgress,
		CustomerHint:  "Your order is being prepared.",
	},
	Descriptor{
		Value:         string(OrderStatusReadyToShip),
		CustomerLabel: "Processing",
		InternalLabel: "Ready to Ship",
		VisualClass:   VisualInfo,
		Icon:          IconPackage,
		Stage:         StageInProgress,
		CustomerHint:  "Your order is packed and waiting for the carrier.",
	},
	Descriptor{
		Value:         string(OrderStatusShipped),
		CustomerLabel: "Shipped",
		VisualClass:   VisualInfo,
		Icon:          IconTruck,
		Stage:         StagePending,
		CustomerHint:  "Your order is on its way.",
	},
	Descriptor{
		Value:         string(OrderStatusDelivered),
		CustomerLabel: "Delivered",
		VisualClass:   VisualSuccess,
		Icon:          IconPackage,
		Stage:         StageComplete,
	},
	Descriptor{
		Value:         string(OrderStatusDeliveryFailed),
		CustomerLabel: "Delivery Failed",
		VisualClass:   VisualDanger,
		Icon:          IconAlert,
		Stage:         StageHalted,
		CustomerHint:  "The carrier could not deliver your order. Report an issue so we can arrange redelivery.",
	},
	Descriptor{
		Value:         string(OrderStatusCancelled),
		CustomerLabel: "Cancelled",
		VisualClass:   VisualNeutral,
		Icon:          IconX,
		Stage:         StageHalted,
	},
)

// Orders is the order status taxonomy.
func Orders() *Taxonomy { return orders }

// ParseOrderStatus maps a stored value to a known status or OrderStatusUnknown.
func ParseOrderStatus(raw string) OrderStatus {
	if orders.Known(raw) {
		return OrderStatus(raw)
	}
	return OrderStatusUnknown
}

// Known reports whether s is part of the order taxonomy.
func (s OrderStatus) Known() bool { return orders.Known(string(s)) }

// Descriptor returns the presentation descriptor for s.
func (s OrderStatus) Descriptor() Descriptor { return orders.Lookup(string(s)) }

// In reports whether s is one of set.
func (s OrderStatus) In(set ...OrderStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
