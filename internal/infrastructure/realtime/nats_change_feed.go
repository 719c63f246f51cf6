package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"trade_portal/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const subjectPrefix = "changes."

var ErrInvalidTable = errors.New("invalid change table")

type subscription interface {
	Unsubscribe() error
}

// NATSChangeFeed fans record changes out to every API instance.
//
// Subject convention: changes.<table>
//
// Messages with an unreadable body are dropped; subscribers only use them
// as a refetch signal.
type NATSChangeFeed struct {
	publish   func(subject string, data []byte) error
	subscribe func(subject string, cb nats.MsgHandler) (subscription, error)
	log       zerolog.Logger
}

var _ interfaces.IChangeFeed = (*NATSChangeFeed)(nil)

func NewNATSChangeFeed(nc *nats.Conn, log zerolog.Logger) *NATSChangeFeed {
	return &NATSChangeFeed{
		publish: nc.Publish,
		subscribe: func(subject string, cb nats.MsgHandler) (subscription, error) {
			return nc.Subscribe(subject, cb)
		},
		log: log.With().Str("component", "nats_change_feed").Logger(),
	}
}

func (f *NATSChangeFeed) Publish(_ context.Context, change interfaces.Change) error {
	if !validTable(change.Table) {
		return ErrInvalidTable
	}
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return f.publish(subjectPrefix+change.Table, data)
}

func (f *NATSChangeFeed) Subscribe(table string, onChange func(interfaces.Change)) (func(), error) {
	if !validTable(table) {
		return nil, ErrInvalidTable
	}

	log := f.log.With().Str("table", table).Logger()
	sub, err := f.subscribe(subjectPrefix+table, func(msg *nats.Msg) {
		var c interfaces.Change
		if err := json.Unmarshal(msg.Data, &c); err != nil {
			log.Warn().Err(err).Msg("dropping malformed change message")
			return
		}
		onChange(c)
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Msg("change subscription opened")

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Debug().Err(err).Msg("change unsubscribe failed")
		}
	}, nil
}

func validTable(table string) bool {
	return table != "" && !strings.ContainsAny(table, ".*> ")
}
