package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/models"
)

// publisher is the part of *nats.Conn the notifier uses.
type publisher interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// natsNotifier publishes every notification as JSON on one subject.
type natsNotifier struct {
	conn    publisher
	subject string
	logger  *logger.Logger

	mu     sync.RWMutex
	closed bool
}

// NewNATSNotifier connects to url and returns a Notifier publishing on
// subject. The connection reconnects on its own; disconnects are logged.
func NewNATSNotifier(url, subject string, log *logger.Logger) (Notifier, error) {
	opts := []nats.Option{
		nats.Name("budget-keeper-notifier"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info().Msg("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return newNATSNotifier(conn, subject, log), nil
}

func newNATSNotifier(conn publisher, subject string, log *logger.Logger) *natsNotifier {
	return &natsNotifier{conn: conn, subject: subject, logger: log}
}

func (n *natsNotifier) Notify(ctx context.Context, notification models.Notification) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierIsClosed
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}

	if err = n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("%w: nats publish: %w", ErrDeliveryFailed, err)
	}

	n.logger.Debug().Str("subject", n.subject).Str("user_id", notification.UserID).Msg("nats notification published")
	return nil
}

// Close flushes pending messages and closes the connection.
func (n *natsNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	return n.conn.Drain()
}
