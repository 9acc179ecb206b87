package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

// SearchEventsPort reports performed searches for analytics.
type SearchEventsPort interface {
	PublishSearchPerformed(ctx context.Context, result *domain.SearchResult) error
}

// OrderEventsPort notifies other services about fulfillment progress.
type OrderEventsPort interface {
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}
