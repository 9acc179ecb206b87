package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"marketplace-service/schemas"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	routingKey string
	msg        amqp.Publishing
}

type fakePublisher struct {
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, publishedMessage{routingKey: routingKey, msg: msg})
	return nil
}

func newValidator(t *testing.T) *contracts.EventValidator {
	t.Helper()
	v, err := contracts.NewEventValidator(schemas.SchemasFS)
	require.NoError(t, err)
	return v
}

func TestOrderEventsAdapter_Publish(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewOrderEventsAdapter(producer, newValidator(t))
	require.NoError(t, err)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	order := &domain.Order{
		ID: 100, ListingID: 1, BuyerID: 21, SellerID: 7, Status: domain.OrderShipped,
		TotalAmount: 520, TrackingNumber: "1Z999", UpdatedAt: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, adapter.PublishOrderStatusChanged(ctx, order, domain.OrderPaid))

	require.Len(t, producer.messages, 1)
	published := producer.messages[0]
	assert.Equal(t, constants.RoutingKeyOrderStatusChanged, published.routingKey)
	assert.Equal(t, contracts.OrderStatusChangedEvent, published.msg.Type)
	assert.Equal(t, amqp.Persistent, published.msg.DeliveryMode)
	assert.Equal(t, "trace-1", published.msg.Headers["x-trace-id"])
	assert.Equal(t, contracts.EventVersionV1, published.msg.Headers["x-event-version"])

	var body OrderStatusChangedDTO
	require.NoError(t, json.Unmarshal(published.msg.Body, &body))
	assert.Equal(t, "paid", body.PreviousStatus)
	assert.Equal(t, "shipped", body.Status)
	assert.Equal(t, published.msg.MessageId, body.EventID)
}

func TestSearchEventsAdapter_Publish(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(producer, newValidator(t))
	require.NoError(t, err)

	result := &domain.SearchResult{
		Context: domain.ContextBuy,
		Filters: domain.NormalizeFilters(domain.ContextBuy, domain.RawFilterParams{Category: "phones"}, nil),
		Page:    domain.SearchPage{Total: 5, Page: 1, Limit: 20, TotalPages: 1},
	}
	require.NoError(t, adapter.PublishSearchPerformed(context.Background(), result))

	require.Len(t, producer.messages, 1)
	assert.Equal(t, constants.RoutingKeySearchPerformed, producer.messages[0].routingKey)
	assert.NotContains(t, producer.messages[0].msg.Headers, "x-trace-id")
}

func TestEventEnvelope_SchemaViolationIsNotPublished(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(producer, newValidator(t))
	require.NoError(t, err)

	// limit 25 is outside the schema enum
	result := &domain.SearchResult{
		Context: domain.ContextBuy,
		Filters: domain.FilterSet{Context: domain.ContextBuy, Sort: "newest", Page: 1, Limit: 25},
		Page:    domain.SearchPage{TotalPages: 1},
	}
	assert.Error(t, adapter.PublishSearchPerformed(context.Background(), result))
	assert.Empty(t, producer.messages)
}

func TestEventEnvelope_PublishErrorIsWrapped(t *testing.T) {
	brokerErr := errors.New("channel closed")
	adapter, err := NewOrderEventsAdapter(&fakePublisher{err: brokerErr}, newValidator(t))
	require.NoError(t, err)

	err = adapter.PublishOrderStatusChanged(context.Background(), &domain.Order{
		ID: 1, ListingID: 1, Status: domain.OrderPaid, UpdatedAt: time.Now(),
	}, domain.OrderPending)
	assert.ErrorIs(t, err, brokerErr)
}

func TestNewEventAdapters_RequireDependencies(t *testing.T) {
	_, err := NewOrderEventsAdapter(nil, newValidator(t))
	assert.Error(t, err)
	_, err = NewSearchEventsAdapter(&fakePublisher{}, nil)
	assert.Error(t, err)
}
