// Package notifier delivers account notifications (currently only
// forgot-password requests) to the outside world: the log, an HTTP webhook
// or a NATS subject.
//
// Notifications never carry secrets, so every channel may log or forward the
// whole payload.
package notifier

import (
	"context"

	"github.com/MKhiriev/budget-keeper/models"
)

// Notifier delivers a single notification. Implementations must be safe for
// concurrent use by the notification workers.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
	Close() error
}
