package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"trade_portal/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSub struct{ unsubscribed int }

func (s *fakeSub) Unsubscribe() error {
	s.unsubscribed++
	return nil
}

type fakeBus struct {
	published map[string][]byte
	handler   nats.MsgHandler
	subject   string
	sub       *fakeSub
}

func newTestNATSFeed() (*NATSChangeFeed, *fakeBus) {
	bus := &fakeBus{published: map[string][]byte{}, sub: &fakeSub{}}
	feed := &NATSChangeFeed{
		publish: func(subject string, data []byte) error {
			bus.published[subject] = data
			return nil
		},
		subscribe: func(subject string, cb nats.MsgHandler) (subscription, error) {
			bus.subject = subject
			bus.handler = cb
			return bus.sub, nil
		},
		log: zerolog.Nop(),
	}
	return feed, bus
}

func TestNATSChangeFeed_Publish(t *testing.T) {
	feed, bus := newTestNATSFeed()
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	err := feed.Publish(context.Background(), interfaces.Change{Table: interfaces.TableOrders, RecordID: "ord-1", CustomerID: "cust-1", Kind: "updated", At: at})
	require.NoError(t, err)

	var got interfaces.Change
	require.NoError(t, json.Unmarshal(bus.published["changes.orders"], &got))
	assert.Equal(t, "ord-1", got.RecordID)
	assert.True(t, got.At.Equal(at))

	err = feed.Publish(context.Background(), interfaces.Change{Table: "orders.>"})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestNATSChangeFeed_Subscribe(t *testing.T) {
	feed, bus := newTestNATSFeed()

	var received []interfaces.Change
	unsubscribe, err := feed.Subscribe(interfaces.TableQuotes, func(c interfaces.Change) { received = append(received, c) })
	require.NoError(t, err)
	assert.Equal(t, "changes.quotes", bus.subject)

	data, _ := json.Marshal(interfaces.Change{Table: interfaces.TableQuotes, RecordID: "q-1"})
	bus.handler(&nats.Msg{Data: data})
	bus.handler(&nats.Msg{Data: []byte("{not json")})
	require.Len(t, received, 1)
	assert.Equal(t, "q-1", received[0].RecordID)

	unsubscribe()
	assert.Equal(t, 1, bus.sub.unsubscribed)

	_, err = feed.Subscribe("", func(interfaces.Change) {})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestLocalChangeFeed(t *testing.T) {
	feed := NewLocalChangeFeed()

	var orders, quotes int
	unsubOrders, err := feed.Subscribe(interfaces.TableOrders, func(interfaces.Change) { orders++ })
	require.NoError(t, err)
	_, err = feed.Subscribe(interfaces.TableQuotes, func(interfaces.Change) { quotes++ })
	require.NoError(t, err)

	require.NoError(t, feed.Publish(context.Background(), interfaces.Change{Table: interfaces.TableOrders}))
	assert.Equal(t, 1, orders)
	assert.Equal(t, 0, quotes)

	unsubOrders()
	unsubOrders()
	require.NoError(t, feed.Publish(context.Background(), interfaces.Change{Table: interfaces.TableOrders}))
	assert.Equal(t, 1, orders)

	assert.ErrorIs(t, feed.Publish(context.Background(), interfaces.Change{}), ErrInvalidTable)
}
