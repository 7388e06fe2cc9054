package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogNotifier writes events to the application log. Used when no operator
// webhook is configured.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the event
func (n *LogNotifier) Notify(_ context.Context, event Event) {
	log.Error().
		Str("source", event.Source).
		Interface("context", event.Context).
		Msg(event.Message)
}
