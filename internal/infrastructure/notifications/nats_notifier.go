package notifications

import (
	"context"
	"encoding/json"
	"time"

	"trade_portal/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const subjectPrefix = "notifications.portal."

// Publisher is the part of *nats.Conn the notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes portal notifications to NATS for the notification
// service to deliver (email, in-app).
//
// Subject convention: notifications.portal.<name>
//
// Publishing is non-fatal: errors are logged and never reach the caller.
type NATSNotifier struct {
	conn Publisher
	log  zerolog.Logger
	now  func() time.Time
}

// Event is the JSON schema published to NATS.
type Event struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

var _ interfaces.INotifier = (*NATSNotifier)(nil)

func NewNATSNotifier(conn Publisher, log zerolog.Logger) *NATSNotifier {
	return &NATSNotifier{
		conn: conn,
		log:  log.With().Str("component", "nats_notifier").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (n *NATSNotifier) Notify(_ context.Context, name string, payload map[string]any) {
	if n.conn == nil || name == "" {
		return
	}

	data, err := json.Marshal(Event{Name: name, OccurredAt: n.now(), Payload: payload})
	if err != nil {
		n.log.Warn().Err(err).Str("name", name).Msg("notification: failed to marshal event")
		return
	}

	subject := subjectPrefix + name
	if err := n.conn.Publish(subject, data); err != nil {
		n.log.Warn().Err(err).Str("subject", subject).Msg("notification: failed to publish NATS event (non-fatal)")
		return
	}
	n.log.Debug().Str("subject", subject).Msg("notification: event published")
}
