package handlers

import (
	"errors"
	"net/http"

	"trade_portal/internal/usecase"
	"trade_portal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

var errConcurrentUpdate = pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "The record changed while the request was processed; reload and retry", http.StatusConflict)

// writeError renders appErr. Server-side failures are logged with their cause,
// which never reaches the client.
func writeError(c *gin.Context, log zerolog.Logger, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(appErr.Err).
			Str("code", appErr.Code).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", appErr.HTTPStatus).
			Msg("request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidCustomerID), errors.Is(err, usecase.ErrEmptyPatch),
		errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrInvalidAddressID), errors.Is(err, usecase.ErrInvalidIssue):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Unknown order status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatusFilter):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_FILTER", "Unknown status filter", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFile):
		return pkg.NewDomainErrorSimple("INVALID_FILE", "Payment proof must be a PDF or image within the size limit", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentProofNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROOF_NOT_FOUND", "Payment proof not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrActionNotPermitted):
		return pkg.NewDomainErrorSimple("ACTION_NOT_PERMITTED", "Action not permitted for the current order status", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return errConcurrentUpdate
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidCustomerID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidStatusFilter):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_FILTER", "Unknown status filter", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteDocumentNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_DOCUMENT_NOT_FOUND", "Quote document not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrActionNotPermitted):
		return pkg.NewDomainErrorSimple("ACTION_NOT_PERMITTED", "Action not permitted for the current quote status", http.StatusConflict)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return errConcurrentUpdate
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapOrderPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Online payments are not available", http.StatusServiceUnavailable)
	default:
		return mapOrderError(err)
	}
}
