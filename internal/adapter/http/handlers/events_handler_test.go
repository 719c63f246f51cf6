package handlers

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trade_portal/internal/infrastructure/realtime"
	"trade_portal/internal/usecase/interfaces"
	mock_interfaces "trade_portal/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

// readEvent returns the name and data of the next SSE event on the stream.
func readEvent(t *testing.T, sc *bufio.Scanner) (string, string) {
	t.Helper()
	var name, data string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && name != "":
			return name, data
		}
	}
	t.Fatalf("stream ended: %v", sc.Err())
	return "", ""
}

func TestEventsHandler_CustomerOrderEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	feed := realtime.NewLocalChangeFeed()
	h := NewEventsHandler(feed, zerolog.Nop())
	h.heartbeat = time.Hour

	r := gin.New()
	r.GET("/v1/customers/:customer_id/orders/events", h.CustomerOrderEvents)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/customers/cust-1/orders/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}
	sc := bufio.NewScanner(resp.Body)
	if name, _ := readEvent(t, sc); name != "ready" {
		t.Fatalf("expected ready event, got %q", name)
	}

	_ = feed.Publish(ctx, interfaces.Change{Table: interfaces.TableOrders, RecordID: "ord-other", CustomerID: "cust-2", Kind: "updated"})
	_ = feed.Publish(ctx, interfaces.Change{Table: interfaces.TableOrders, RecordID: "ord-1", CustomerID: "cust-1", Kind: "updated"})

	name, data := readEvent(t, sc)
	if name != "change" || !strings.Contains(data, `"record_id":"ord-1"`) {
		t.Fatalf("unexpected event %q: %s", name, data)
	}
}

func TestEventsHandler_SubscribeError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	feed := mock_interfaces.NewMockIChangeFeed(ctrl)
	h := NewEventsHandler(feed, zerolog.Nop())

	r := gin.New()
	r.GET("/v1/customers/:customer_id/orders/events", h.CustomerOrderEvents)

	feed.EXPECT().Subscribe(interfaces.TableOrders, gomock.Any()).Return(nil, errors.New("nats: connection closed"))

	req := httptest.NewRequest(http.MethodGet, "/v1/customers/cust-1/orders/events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestChangeForCustomer(t *testing.T) {
	cases := []struct {
		change interfaces.Change
		want   bool
	}{
		{interfaces.Change{Table: interfaces.TableOrders, CustomerID: "cust-1"}, true},
		{interfaces.Change{Table: interfaces.TableOrders, CustomerID: "cust-2"}, false},
		{interfaces.Change{Table: interfaces.TableOrders}, false},
		{interfaces.Change{Table: interfaces.TableQuotes, CustomerID: "cust-1"}, false},
	}
	for _, tc := range cases {
		if got := changeForCustomer(tc.change, "cust-1"); got != tc.want {
			t.Fatalf("changeForCustomer(%+v) = %v, want %v", tc.change, got, tc.want)
		}
	}
}
