package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/port"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher is implemented by rabbitmq_producer.Publisher.
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// eventValidator is implemented by contracts.EventValidator.
type eventValidator interface {
	Validate(eventType, version string, body []byte) error
}

// eventEnvelope validates a body against its schema and publishes it with
// the event type, version and trace id as headers.
type eventEnvelope struct {
	producer  messagePublisher
	validator eventValidator
}

func newEventEnvelope(producer messagePublisher, validator eventValidator) (*eventEnvelope, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if validator == nil {
		return nil, fmt.Errorf("rabbitmq adapter: validator cannot be nil")
	}
	return &eventEnvelope{producer: producer, validator: validator}, nil
}

func (e *eventEnvelope) publish(ctx context.Context, routingKey, eventType, version string, eventID uuid.UUID, payload interface{}) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "EventPublisher",
		"routing_key": routingKey,
		"event_type":  eventType,
		"event_id":    eventID.String(),
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal %s: %w", eventType, err)
	}
	if err := e.validator.Validate(eventType, version, body); err != nil {
		adapterLogger.Error("Event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: %s rejected: %w", eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    eventID.String(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Headers: amqp.Table{
			"x-event-type":    eventType,
			"x-event-version": version,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := e.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", eventType, err)
	}

	adapterLogger.Debug("Event published", nil)
	return nil
}
