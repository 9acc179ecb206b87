package rabbitmq

import (
	"context"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// OrderStatusChangedDTO is the body of an OrderStatusChanged/1.0.0 message.
type OrderStatusChangedDTO struct {
	EventID        string  `json:"event_id"`
	OccurredAt     string  `json:"occurred_at"`
	TraceID        string  `json:"trace_id,omitempty"`
	OrderID        int64   `json:"order_id"`
	ListingID      int64   `json:"listing_id"`
	BuyerID        int64   `json:"buyer_id"`
	SellerID       int64   `json:"seller_id"`
	PreviousStatus string  `json:"previous_status"`
	Status         string  `json:"status"`
	TrackingNumber string  `json:"tracking_number,omitempty"`
	TotalAmount    float64 `json:"total_amount"`
}

type OrderEventsAdapter struct {
	envelope *eventEnvelope
}

func NewOrderEventsAdapter(producer messagePublisher, validator eventValidator) (*OrderEventsAdapter, error) {
	envelope, err := newEventEnvelope(producer, validator)
	if err != nil {
		return nil, err
	}
	return &OrderEventsAdapter{envelope: envelope}, nil
}

func (a *OrderEventsAdapter) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	eventID := uuid.New()
	dto := OrderStatusChangedDTO{
		EventID:        eventID.String(),
		OccurredAt:     order.UpdatedAt.UTC().Format(time.RFC3339),
		TraceID:        contextkeys.TraceIDFromContext(ctx),
		OrderID:        order.ID,
		ListingID:      order.ListingID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		PreviousStatus: string(previous),
		Status:         string(order.Status),
		TrackingNumber: order.TrackingNumber,
		TotalAmount:    order.TotalAmount,
	}

	return a.envelope.publish(ctx, constants.RoutingKeyOrderStatusChanged,
		contracts.OrderStatusChangedEvent, contracts.EventVersionV1, eventID, dto)
}
