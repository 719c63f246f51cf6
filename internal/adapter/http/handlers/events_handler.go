package handlers

import (
	"net/http"
	"strings"
	"time"

	"trade_portal/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultHeartbeat = 25 * time.Second

// EventsHandler streams refetch signals to open order screens over SSE.
// Events carry no record data; clients reload the list on "change".

type EventsHandler struct {
	feed      interfaces.IChangeFeed
	heartbeat time.Duration
	log       zerolog.Logger
}

func NewEventsHandler(feed interfaces.IChangeFeed, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		feed:      feed,
		heartbeat: defaultHeartbeat,
		log:       log.With().Str("component", "events_handler").Logger(),
	}
}

// @Summary     Stream order changes
// @Tags        orders
// @Produce     text/event-stream
// @Param       customer_id path string true "Customer ID"
// @Success     200 {string} string
// @Failure     400 {object} pkg.HTTPError
// @Failure     500 {object} pkg.HTTPError
// @Router      /customers/{customer_id}/orders/events [get]
func (h *EventsHandler) CustomerOrderEvents(c *gin.Context) {
	customerID := strings.TrimSpace(c.Param("customer_id"))
	if customerID == "" {
		writeError(c, h.log, errInvalidRequest)
		return
	}

	changes := make(chan interfaces.Change, 16)
	unsubscribe, err := h.feed.Subscribe(interfaces.TableOrders, func(ch interfaces.Change) {
		if !changeForCustomer(ch, customerID) {
			return
		}
		select {
		case changes <- ch:
		default:
			// A pending signal already makes the client refetch.
		}
	})
	if err != nil {
		h.log.Error().Err(err).Str("customer_id", customerID).Msg("subscribe failed")
		writeError(c, h.log, mapOrderError(err))
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{"customer_id": customerID})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Str("customer_id", customerID).Msg("event stream closed")
			return
		case ch := <-changes:
			c.SSEvent("change", ch)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", gin.H{})
			c.Writer.Flush()
		}
	}
}

func changeForCustomer(ch interfaces.Change, customerID string) bool {
	return ch.Table == interfaces.TableOrders && ch.CustomerID == customerID
}
