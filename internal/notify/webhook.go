package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// WebhookNotifier posts events as JSON to an operator webhook.
// An empty URL disables delivery; send failures are logged, never surfaced.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier for the given URL
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts the event to the webhook
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode notification event")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("Failed to build notification request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("source", event.Source).Msg("Failed to deliver notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("source", event.Source).
			Msg("Notification webhook returned non-success status")
	}
}
