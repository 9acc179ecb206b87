package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type OrderRepositoryPort interface {
	ListOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.OrderPage, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	// UpdateStatus applies change only while the order is still in change.From,
	// otherwise it returns domain.ErrOrderConflict. Listing side effects run in the same transaction.
	UpdateStatus(ctx context.Context, change domain.OrderStatusChange) (*domain.Order, error)
}
