package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"strings"
	"time"
)

const (
	defaultOrdersPageSize = 20
	maxOrdersPageSize     = 100
)

func requireAdmin(session domain.Session) error {
	if !session.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

type ListOrdersUseCase struct {
	repo port.OrderRepositoryPort
}

func NewListOrdersUseCase(repo port.OrderRepositoryPort) *ListOrdersUseCase {
	return &ListOrdersUseCase{repo: repo}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, session domain.Session, filter domain.OrderListFilter) (*domain.OrderPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListOrders",
		"user_id":  session.UserID,
	})

	if err := requireAdmin(session); err != nil {
		ucLogger.Warn("Non-admin tried to list orders", nil)
		return nil, err
	}
	ucLogger.Info("Use case started", nil)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultOrdersPageSize
	}
	if filter.Limit > maxOrdersPageSize {
		filter.Limit = maxOrdersPageSize
	}

	page, err := uc.repo.ListOrders(ctx, filter)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}
	if page.Orders == nil {
		page.Orders = []domain.Order{}
	}
	page.Page = filter.Page
	page.Limit = filter.Limit
	page.TotalPages = domain.TotalPages(page.Total, filter.Limit)

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": page.Total})
	return page, nil
}

type GetOrderUseCase struct {
	repo port.OrderRepositoryPort
}

func NewGetOrderUseCase(repo port.OrderRepositoryPort) *GetOrderUseCase {
	return &GetOrderUseCase{repo: repo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, session domain.Session, orderID int64) (*domain.Order, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetOrder",
		"order_id": orderID,
	})

	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	order, err := uc.repo.GetOrder(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			ucLogger.Error("Storage returned an error", err, nil)
		}
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatusUseCase moves an order through its fulfillment states.
type UpdateOrderStatusUseCase struct {
	repo   port.OrderRepositoryPort
	events port.OrderEventsPort
	now    func() time.Time
}

func NewUpdateOrderStatusUseCase(repo port.OrderRepositoryPort, events port.OrderEventsPort) (*UpdateOrderStatusUseCase, error) {
	if repo == nil {
		return nil, errors.New("order repository cannot be nil")
	}
	if events == nil {
		return nil, errors.New("order events publisher cannot be nil")
	}
	return &UpdateOrderStatusUseCase{repo: repo, events: events, now: time.Now}, nil
}

func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, session domain.Session, cmd domain.UpdateOrderStatusCommand) (*domain.Order, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "UpdateOrderStatus",
		"order_id":      cmd.OrderID,
		"target_status": string(cmd.Status),
		"user_id":       session.UserID,
	})

	if err := requireAdmin(session); err != nil {
		ucLogger.Warn("Non-admin tried to change order status", nil)
		return nil, err
	}
	ucLogger.Info("Use case started", nil)

	order, err := uc.repo.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			ucLogger.Error("Storage returned an error while loading order", err, nil)
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(cmd.Status) {
		ucLogger.Warn("Rejected order transition", port.Fields{"current_status": string(order.Status)})
		return nil, domain.ErrInvalidTransition
	}

	tracking := strings.TrimSpace(cmd.TrackingNumber)
	if cmd.Status == domain.OrderShipped && tracking == "" {
		return nil, domain.ErrTrackingRequired
	}
	if cmd.Status != domain.OrderShipped {
		tracking = order.TrackingNumber
	}

	updated, err := uc.repo.UpdateStatus(ctx, domain.OrderStatusChange{
		OrderID:        order.ID,
		From:           order.Status,
		To:             cmd.Status,
		TrackingNumber: tracking,
		ChangedBy:      session.UserID,
		ChangedAt:      uc.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderConflict) {
			ucLogger.Warn("Order changed concurrently", nil)
		} else {
			ucLogger.Error("Storage returned an error while updating status", err, nil)
		}
		return nil, err
	}

	if err := uc.events.PublishOrderStatusChanged(ctx, updated, order.Status); err != nil {
		ucLogger.Error("Failed to publish order status change", err, nil)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"previous_status": string(order.Status)})
	return updated, nil
}
