package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-mudcore/internal/game"
)

// SessionSubject is the subject a session's payloads are published on.
func SessionSubject(session uuid.UUID) string {
	return fmt.Sprintf("session.%s", session)
}

// NatsSink publishes a player's payloads as JSON.
type NatsSink struct {
	server  *NatsServer
	subject string
}

func NewNatsSink(server *NatsServer, subject string) *NatsSink {
	return &NatsSink{server: server, subject: subject}
}

func (s *NatsSink) Send(p game.Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	if err := s.server.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", s.subject, err)
	}
	return nil
}

// NatsDelivery routes session output through the broker, so the actor never
// waits on a slow connection.
type NatsDelivery struct {
	server *NatsServer
}

func NewNatsDelivery(server *NatsServer) *NatsDelivery {
	return &NatsDelivery{server: server}
}

// Open subscribes the session to its subject and returns the sink that feeds it.
func (d *NatsDelivery) Open(ctx context.Context, session uuid.UUID, recv chan<- game.Payload, done <-chan struct{}) (game.Sink, func(), error) {
	select {
	case <-d.server.Ready():
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	subject := SessionSubject(session)
	unsubscribe, err := d.server.Subscribe(subject, func(data []byte) {
		var p game.Payload
		if err := json.Unmarshal(data, &p); err != nil {
			slog.WarnContext(ctx, "decoding session payload", "session", session, "error", err)
			return
		}
		select {
		case recv <- p:
		case <-done:
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return NewNatsSink(d.server, subject), unsubscribe, nil
}
