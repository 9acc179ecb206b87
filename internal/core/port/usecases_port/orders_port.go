package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type ListOrdersUseCase interface {
	Execute(ctx context.Context, session domain.Session, filter domain.OrderListFilter) (*domain.OrderPage, error)
}

type GetOrderUseCase interface {
	Execute(ctx context.Context, session domain.Session, orderID int64) (*domain.Order, error)
}

type UpdateOrderStatusUseCase interface {
	Execute(ctx context.Context, session domain.Session, cmd domain.UpdateOrderStatusCommand) (*domain.Order, error)
}
