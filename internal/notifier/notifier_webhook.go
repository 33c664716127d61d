package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/utils"
	"github.com/MKhiriev/budget-keeper/models"
)

// webhookTimeout bounds a single webhook call.
const webhookTimeout = 10 * time.Second

// webhookNotifier POSTs every notification as JSON to a fixed URL. Any 2xx
// response counts as delivered.
type webhookNotifier struct {
	client *utils.HTTPClient
	url    string
	logger *logger.Logger
}

func NewWebhookNotifier(url string, log *logger.Logger) Notifier {
	return &webhookNotifier{
		client: utils.NewHTTPClient("", webhookTimeout),
		url:    url,
		logger: log,
	}
}

func (w *webhookNotifier) Notify(ctx context.Context, notification models.Notification) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(notification).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("%w: webhook request: %w", ErrDeliveryFailed, err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: webhook answered %s", ErrDeliveryFailed, resp.Status())
	}

	w.logger.Debug().Str("user_id", notification.UserID).Msg("webhook notification delivered")
	return nil
}

func (w *webhookNotifier) Close() error {
	return nil
}
