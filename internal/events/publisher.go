package events

import "context"

// EventPublisher publishes domain events. Publishing is best-effort: services
// log failures and never roll back the triggering operation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]any) error
	Close() error
}
