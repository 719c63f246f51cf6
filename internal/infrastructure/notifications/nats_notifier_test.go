package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingPublisher struct {
	subjects []string
	data     [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.subjects = append(p.subjects, subject)
	p.data = append(p.data, data)
	return p.err
}

func TestNATSNotifier_Notify(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNATSNotifier(pub, zerolog.Nop())
	n.now = func() time.Time { return time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC) }

	n.Notify(context.Background(), "payment-proof-uploaded", map[string]any{"order_id": "ord-1"})

	if len(pub.subjects) != 1 || pub.subjects[0] != "notifications.portal.payment-proof-uploaded" {
		t.Fatalf("unexpected subjects: %v", pub.subjects)
	}
	var ev Event
	if err := json.Unmarshal(pub.data[0], &ev); err != nil {
		t.Fatalf("invalid event: %v", err)
	}
	if ev.Name != "payment-proof-uploaded" || ev.Payload["order_id"] != "ord-1" || ev.OccurredAt.Year() != 2026 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestNATSNotifier_NonFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats: connection closed")}
	n := NewNATSNotifier(pub, zerolog.Nop())

	// must not panic or surface the error
	n.Notify(context.Background(), "quote-accepted", nil)
	if len(pub.subjects) != 1 {
		t.Fatalf("expected one publish attempt, got %d", len(pub.subjects))
	}

	NewNATSNotifier(nil, zerolog.Nop()).Notify(context.Background(), "quote-accepted", nil)
}
