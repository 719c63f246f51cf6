package handlers

import (
	"net/http"
	"time"

	request "trade_portal/internal/adapter/http/dto/request"
	response "trade_portal/internal/adapter/http/dto/response"
	"trade_portal/internal/domain/lifecycle"
	"trade_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminOrderHandler serves the staff order operations. Orders are rendered
// for the internal audience.

type AdminOrderHandler struct {
	usecase usecase.IOrderUseCase
	log     zerolog.Logger
	now     func() time.Time
}

func NewAdminOrderHandler(uc usecase.IOrderUseCase, log zerolog.Logger) *AdminOrderHandler {
	return &AdminOrderHandler{
		usecase: uc,
		log:     log.With().Str("component", "admin_order_handler").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// @Summary     Get order (staff)
// @Tags        admin
// @Produce     json
// @Param       id path string true "Order ID"
// @Success     200 {object} response.OrderResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /admin/orders/{id} [get]
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o, h.view(c)))
}

// @Summary     Update order
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       payload body request.OrderPatchRequest true "Fields to change"
// @Success     200 {object} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /admin/orders/{id} [patch]
func (h *AdminOrderHandler) UpdateOrder(c *gin.Context) {
	orderID := c.Param("id")
	var payload request.OrderPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}

	o, err := h.usecase.UpdateOrder(c.Request.Context(), orderID, patch)
	if err != nil {
		h.log.Info().Err(err).Str("order_id", orderID).Msg("order update failed")
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o, h.view(c)))
}

// @Summary     Verify payment
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       payload body request.PaymentVerificationRequest true "Confirmed amount"
// @Success     200 {object} response.OrderResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /admin/orders/{id}/payment-verification [post]
func (h *AdminOrderHandler) VerifyPayment(c *gin.Context) {
	orderID := c.Param("id")
	var payload request.PaymentVerificationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		writeError(c, h.log, errInvalidRequest)
		return
	}

	o, err := h.usecase.VerifyPayment(c.Request.Context(), orderID, amount)
	if err != nil {
		h.log.Info().Err(err).Str("order_id", orderID).Msg("payment verification failed")
		writeError(c, h.log, mapOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o, h.view(c)))
}

func (h *AdminOrderHandler) view(c *gin.Context) response.View {
	return response.View{
		Audience: lifecycle.AudienceInternal,
		Variant:  lifecycle.ParseVariant(c.Query("variant")),
		Now:      h.now(),
	}
}
