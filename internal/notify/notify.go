package notify

import "context"

// Event is a structured operator notification for fetch error conditions
type Event struct {
	Message string         `json:"message"`
	Source  string         `json:"source"`  // classified error source, e.g. "AlphaVantage API: Rate Limit"
	Context map[string]any `json:"context"` // contextual fields such as symbol/status
}

// Notifier delivers events to an operator-facing channel.
// Delivery is best-effort: implementations must never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Nop discards all events
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}
