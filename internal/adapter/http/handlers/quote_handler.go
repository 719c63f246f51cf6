package handlers

import (
	"context"
	"net/http"
	"time"

	request "trade_portal/internal/adapter/http/dto/request"
	response "trade_portal/internal/adapter/http/dto/response"
	"trade_portal/internal/domain/entities"
	"trade_portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	urlTTL  time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, urlTTL time.Duration, log zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		usecase: uc,
		urlTTL:  urlTTL,
		log:     log.With().Str("component", "quote_handler").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// @Summary     List customer quotes
// @Tags        quotes
// @Produce     json
// @Param       customer_id path string true "Customer ID"
// @Param       status query string false "Status filter (all or a status value)"
// @Success     200 {array} response.QuoteResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /customers/{customer_id}/quotes [get]
func (h *QuoteHandler) ListCustomerQuotes(c *gin.Context) {
	quotes, err := h.usecase.ListCustomerQuotes(c.Request.Context(), c.Param("customer_id"), c.Query("status"))
	if err != nil {
		writeError(c, h.log, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes, customerView(c, h.now())))
}

// @Summary     Get quote
// @Tags        quotes
// @Produce     json
// @Param       id path string true "Quote ID"
// @Success     200 {object} response.QuoteResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	h.respond(c, h.usecase.GetQuote)
}

// @Summary     Accept quote
// @Tags        quotes
// @Produce     json
// @Param       id path string true "Quote ID"
// @Success     200 {object} response.QuoteResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /quotes/{id}/accept [post]
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	h.respond(c, h.usecase.Accept)
}

// DeclineQuote takes an optional reason; an empty body is accepted.
//
// @Summary     Decline quote
// @Tags        quotes
// @Accept      json
// @Produce     json
// @Param       id path string true "Quote ID"
// @Param       payload body request.DeclineQuoteRequest false "Reason"
// @Success     200 {object} response.QuoteResponse
// @Failure     400 {object} pkg.HTTPError
// @Failure     404 {object} pkg.HTTPError
// @Failure     409 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /quotes/{id}/decline [post]
func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	var payload request.DeclineQuoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeError(c, h.log, errInvalidRequest)
			return
		}
	}
	h.respond(c, func(ctx context.Context, id string) (entities.Quote, error) {
		return h.usecase.Decline(ctx, id, payload.Reason)
	})
}

// @Summary     Get quote document URL
// @Tags        quotes
// @Produce     json
// @Param       id path string true "Quote ID"
// @Success     200 {object} response.SignedURLResponse
// @Failure     404 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /quotes/{id}/document/url [get]
func (h *QuoteHandler) DocumentURL(c *gin.Context) {
	url, err := h.usecase.DocumentURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.SignedURLResponse{URL: url, ExpiresAt: h.now().Add(h.urlTTL)})
}

func (h *QuoteHandler) respond(
	c *gin.Context,
	load func(ctx context.Context, id string) (entities.Quote, error),
) {
	quoteID := c.Param("id")
	q, err := load(c.Request.Context(), quoteID)
	if err != nil {
		h.log.Debug().Err(err).Str("quote_id", quoteID).Msg("quote request failed")
		writeError(c, h.log, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q, customerView(c, h.now())))
}
