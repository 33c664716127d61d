package notifier

import (
	"context"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/models"
)

// logNotifier writes notifications to the structured log. It is the default
// for development setups without a mail or messaging integration.
type logNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{logger: log}
}

func (l *logNotifier) Notify(ctx context.Context, notification models.Notification) error {
	l.logger.Info().
		Str("kind", string(notification.Kind)).
		Str("user_id", notification.UserID).
		Str("email", notification.Email).
		Time("requested_at", notification.RequestedAt).
		Msg("notification")
	return nil
}

func (l *logNotifier) Close() error {
	return nil
}
