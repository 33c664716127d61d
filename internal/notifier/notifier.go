package notifier

import (
	"fmt"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/logger"
)

// NewNotifier builds the Notifier selected by cfg.Kind.
func NewNotifier(cfg config.Notifier, log *logger.Logger) (Notifier, error) {
	switch cfg.Kind {
	case config.NotifierLog, "":
		return NewLogNotifier(log), nil
	case config.NotifierWebhook:
		return NewWebhookNotifier(cfg.WebhookURL, log), nil
	case config.NotifierNATS:
		return NewNATSNotifier(cfg.NATSURL, cfg.NATSSubject, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, cfg.Kind)
	}
}
