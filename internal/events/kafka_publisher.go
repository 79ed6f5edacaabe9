package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// KafkaConfig holds configuration for the Kafka event publisher.
type KafkaConfig struct {
	Brokers []string
}

type kafkaPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaPublisher creates a Watermill Kafka publisher for domain events.
func NewKafkaPublisher(config KafkaConfig, logger *slog.Logger) (EventPublisher, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}

	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   config.Brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &kafkaPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, payload map[string]any) error {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}

	msg := message.NewMessage(event.ID, data)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(eventType, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}

	p.logger.Debug("published event", "type", eventType, "event_id", event.ID)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.publisher.Close()
}
