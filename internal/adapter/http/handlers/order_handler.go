package handlers

import (
	"io"
	"net/http"
	"time"

	request "trade_portal/internal/adapter/http/dto/request"
	response "trade_portal/internal/adapter/http/dto/response"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderHandler serves the customer order screens.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
	urlTTL  time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

func NewOrderHandler(uc usecase.IOrderUseCase, urlTTL time.Duration, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		usecase: uc,
		urlTTL:  urlTTL,
		log:     log.With().Str("component", "order_handler").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// @Summary     List customer orders
// @Tags        orders
// @Produce     json
// @Param       customer_id path string true "Customer ID"
// @Param       status query string false "Status filter (all or a status value)"
// @Param       variant query string false "Badge variant (default, compact)"
// @Success     200 {array} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /customers/{customer_id}/orders [get]
func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	orders, err := h.usecase.ListCustomerOrders(c.Request.Context(), c.Param("customer_id"), c.Query("status"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders, h.view(c)))
}

// @Summary     Get order
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       variant query string false "Badge variant (default, compact)"
// @Success     200 {object} response.OrderResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o, h.view(c)))
}

// UploadPaymentProof accepts a multipart form with the proof in the "file" field.
//
// @Summary     Upload payment proof
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       file formData file true "PDF or image"
// @Success     201 {object} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     413 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/payment-proof [post]
func (h *OrderHandler) UploadPaymentProof(c *gin.Context) {
	orderID := c.Param("id")
	fh, err := c.FormFile("file")
	if err != nil {
		h.log.Info().Err(err).Str("order_id", orderID).Msg("payment proof missing from form")
		writeError(c, h.log, errInvalidRequest)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}

	o, err := h.usecase.UploadPaymentProof(c.Request.Context(), orderID, usecase.ProofUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.log.Info().Err(err).Str("order_id", orderID).Msg("payment proof upload failed")
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o, h.view(c)))
}

// @Summary     Get payment proof URL
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID"
// @Success     200 {object} response.SignedURLResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/payment-proof/url [get]
func (h *OrderHandler) PaymentProofURL(c *gin.Context) {
	url, err := h.usecase.PaymentProofURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.SignedURLResponse{URL: url, ExpiresAt: h.now().Add(h.urlTTL)})
}

// @Summary     Set delivery address
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       payload body request.DeliveryAddressRequest true "Delivery address"
// @Success     200 {object} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/delivery-address [put]
func (h *OrderHandler) SetDeliveryAddress(c *gin.Context) {
	var payload request.DeliveryAddressRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}
	o, err := h.usecase.SetDeliveryAddress(c.Request.Context(), c.Param("id"), payload.DeliveryAddressID)
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o, h.view(c)))
}

// @Summary     Report delivery issue
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       payload body request.DeliveryIssueRequest true "Issue"
// @Success     201 {object} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/issues [post]
func (h *OrderHandler) ReportIssue(c *gin.Context) {
	var payload request.DeliveryIssueRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}
	o, err := h.usecase.ReportIssue(c.Request.Context(), c.Param("id"), payload.Category, payload.Description)
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o, h.view(c)))
}

// Tracking answers 200 even when tracking is refused; the body carries the reason.
//
// @Summary     Get shipment tracking
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID"
// @Success     200 {object} response.TrackingResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/tracking [get]
func (h *OrderHandler) Tracking(c *gin.Context) {
	t, err := h.usecase.Tracking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromTracking(t))
}

// @Summary     Reorder
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID"
// @Success     201 {object} response.QuoteResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/reorder [post]
func (h *OrderHandler) Reorder(c *gin.Context) {
	q, err := h.usecase.Reorder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(q, h.view(c)))
}

func (h *OrderHandler) view(c *gin.Context) response.View {
	return customerView(c, h.now())
}

func customerView(c *gin.Context, now time.Time) response.View {
	return response.View{
		Audience: lifecycle.AudienceCustomer,
		Variant:  lifecycle.ParseVariant(c.Query("variant")),
		Now:      now,
	}
}
