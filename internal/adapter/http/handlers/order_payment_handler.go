package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	request "trade_portal/internal/adapter/http/dto/request"
	response "trade_portal/internal/adapter/http/dto/response"
	"trade_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OrderPaymentHandler charges the remaining balance of an order online.

type OrderPaymentHandler struct {
	usecase  usecase.IOrderPaymentUseCase
	mockMode bool
	log      zerolog.Logger
	now      func() time.Time
}

func NewOrderPaymentHandler(uc usecase.IOrderPaymentUseCase, mockMode bool, log zerolog.Logger) *OrderPaymentHandler {
	return &OrderPaymentHandler{
		usecase:  uc,
		mockMode: mockMode,
		log:      log.With().Str("component", "order_payment_handler").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// @Summary     Pay order balance online
// @Tags        payments
// @Accept      json
// @Produce     json
// @Param       id path string true "Order ID"
// @Param       payload body request.OnlinePaymentRequest false "Mercado Pago payload"
// @Success     200 {object} response.OnlinePaymentResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     401 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     503 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /orders/{id}/payments [post]
func (h *OrderPaymentHandler) PayBalance(c *gin.Context) {
	orderID := c.Param("id")
	log := h.log.With().Str("order_id", orderID).Logger()
	log.Debug().Bool("mock", h.mockMode).Msg("pay balance start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.Info().Err(err).Msg("invalid payload")
			writeError(c, log, errInvalidRequest)
			return
		}
		log.Info().Err(err).Msg("payload invalid in mock mode; falling back to a pix payload")
		mpPayload = json.RawMessage(`{"payment_method_id":"pix"}`)
	}

	p, err := h.usecase.PayBalance(c.Request.Context(), orderID, mpPayload)
	if err != nil {
		log.Info().Err(err).Msg("pay balance failed")
		writeError(c, log, mapOrderPaymentError(err))
		return
	}
	log.Info().Str("provider_payment_id", p.ProviderPaymentID).Str("provider_status", p.ProviderStatus).Msg("pay balance success")

	c.JSON(http.StatusOK, response.FromOnlinePayment(p, customerView(c, h.now())))
}

// readMPPayload accepts either a bare Mercado Pago payload or one wrapped in
// {"mp_payload": ...}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope request.OnlinePaymentRequest
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.MPPayload != nil {
		wrapped := strings.TrimSpace(string(envelope.MPPayload))
		if wrapped == "" || wrapped == "null" {
			return nil, errors.New("mp_payload cannot be empty")
		}
		return envelope.MPPayload, nil
	}

	return json.RawMessage(raw), nil
}
