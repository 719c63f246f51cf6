package routes

import (
	"trade_portal/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathStatuses  = "/statuses"
	PathCustomers = "/customers/:customer_id"
	PathOrders    = "/orders"
	PathQuotes    = "/quotes"
	PathAdmin     = "/admin"
)

// multipart framing on top of the proof itself
const uploadOverhead = 64 << 10

// Handlers groups the HTTP handlers of the portal.
type Handlers struct {
	Statuses      *handlers.StatusHandler
	Orders        *handlers.OrderHandler
	AdminOrders   *handlers.AdminOrderHandler
	Quotes        *handlers.QuoteHandler
	OrderPayments *handlers.OrderPaymentHandler
	Events        *handlers.EventsHandler
}

func addPortalRoutes(rg *gin.RouterGroup, h Handlers, maxProofSize int) {
	statuses := rg.Group(PathStatuses)
	{
		statuses.GET("/orders", h.Statuses.OrderStatuses)
		statuses.GET("/quotes", h.Statuses.QuoteStatuses)
	}

	customers := rg.Group(PathCustomers)
	{
		customers.GET("/orders", h.Orders.ListCustomerOrders)
		customers.GET("/orders/events", h.Events.CustomerOrderEvents)
		customers.GET("/quotes", h.Quotes.ListCustomerQuotes)
	}

	orders := rg.Group(PathOrders)
	{
		orders.GET("/:id", h.Orders.GetOrder)
		orders.POST("/:id/payment-proof", maxBodyBytes(int64(maxProofSize)+uploadOverhead), h.Orders.UploadPaymentProof)
		orders.GET("/:id/payment-proof/url", h.Orders.PaymentProofURL)
		orders.PUT("/:id/delivery-address", h.Orders.SetDeliveryAddress)
		orders.POST("/:id/issues", h.Orders.ReportIssue)
		orders.GET("/:id/tracking", h.Orders.Tracking)
		orders.POST("/:id/reorder", h.Orders.Reorder)
		orders.POST("/:id/payments", h.OrderPayments.PayBalance)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:id", h.Quotes.GetQuote)
		quotes.POST("/:id/accept", h.Quotes.AcceptQuote)
		quotes.POST("/:id/decline", h.Quotes.DeclineQuote)
		quotes.GET("/:id/document/url", h.Quotes.DocumentURL)
	}

	admin := rg.Group(PathAdmin + PathOrders)
	{
		admin.GET("/:id", h.AdminOrders.GetOrder)
		admin.PATCH("/:id", h.AdminOrders.UpdateOrder)
		admin.POST("/:id/payment-verification", h.AdminOrders.VerifyPayment)
	}
}
