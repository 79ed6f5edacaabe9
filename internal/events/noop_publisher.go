package events

import (
	"context"
	"log/slog"
)

// noopPublisher is used when no broker is configured; events are logged and
// dropped.
type noopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(ctx context.Context, eventType string, payload map[string]any) error {
	p.logger.Debug("event publishing disabled, dropping event", "type", eventType)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
