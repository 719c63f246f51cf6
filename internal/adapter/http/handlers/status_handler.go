package handlers

import (
	"net/http"

	response "trade_portal/internal/adapter/http/dto/response"
	"trade_portal/internal/domain/lifecycle"

	"github.com/gin-gonic/gin"
)

// StatusHandler publishes the order and quote status taxonomies so screens
// render labels, colors and filters from a single table.

type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// @Summary     List order statuses
// @Tags        statuses
// @Produce     json
// @Success     200 {object} response.StatusTaxonomyResponse
// @Router      /statuses/orders [get]
func (h *StatusHandler) OrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromTaxonomy(lifecycle.Orders()))
}

// @Summary     List quote statuses
// @Tags        statuses
// @Produce     json
// @Success     200 {object} response.StatusTaxonomyResponse
// @Router      /statuses/quotes [get]
func (h *StatusHandler) QuoteStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromTaxonomy(lifecycle.Quotes()))
}
