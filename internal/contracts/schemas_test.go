package contracts

import (
	"marketplace-service/schemas"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromPath(t *testing.T) {
	key, ok := keyFromPath("events/order-status-changed/v1.json")
	require.True(t, ok)
	assert.Equal(t, "OrderStatusChanged/1.0.0", key)

	_, ok = keyFromPath("events/loose.json")
	assert.False(t, ok)
}

func TestEventValidator(t *testing.T) {
	v, err := NewEventValidator(schemas.SchemasFS)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SearchPerformed/1.0.0", "OrderStatusChanged/1.0.0"}, v.Known())

	valid := []byte(`{
		"event_id": "5f0c3c8e-8a57-4c1e-9a3b-3a6e2f1d9b10",
		"occurred_at": "2026-10-17T08:00:00Z",
		"order_id": 100, "listing_id": 1,
		"previous_status": "pending", "status": "paid"
	}`)
	assert.NoError(t, v.Validate(OrderStatusChangedEvent, EventVersionV1, valid))

	badStatus := []byte(`{
		"event_id": "5f0c3c8e-8a57-4c1e-9a3b-3a6e2f1d9b10",
		"occurred_at": "2026-10-17T08:00:00Z",
		"order_id": 100, "listing_id": 1,
		"previous_status": "pending", "status": "lost"
	}`)
	assert.Error(t, v.Validate(OrderStatusChangedEvent, EventVersionV1, badStatus))

	assert.Error(t, v.Validate(OrderStatusChangedEvent, "2.0.0", valid))
	assert.Error(t, v.Validate(SearchPerformedEvent, EventVersionV1, []byte("{")))
}
