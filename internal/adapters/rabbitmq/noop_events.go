package rabbitmq

import (
	"context"
	"marketplace-service/internal/core/domain"
)

// NoopEventsAdapter is wired when the broker is disabled.
type NoopEventsAdapter struct{}

func (NoopEventsAdapter) PublishSearchPerformed(ctx context.Context, result *domain.SearchResult) error {
	return nil
}

func (NoopEventsAdapter) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	return nil
}
