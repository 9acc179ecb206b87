package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

// ParseOrderStatus accepts one of the known statuses, case-insensitively.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return status, nil
	}
	return "", ErrInvalidOrderStatus
}

// CanTransitionTo reports whether an order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a purchase of one listing awaiting or going through fulfillment.
type Order struct {
	ID             int64
	ListingID      int64
	ListingTitle   string
	BuyerID        int64
	SellerID       int64
	Status         OrderStatus
	TotalAmount    float64
	TrackingNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderListFilter selects a page of orders, optionally by status.
type OrderListFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

type OrderPage struct {
	Orders     []Order
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// UpdateOrderStatusCommand is what an admin asks for.
type UpdateOrderStatusCommand struct {
	OrderID        int64
	Status         OrderStatus
	TrackingNumber string
}

// OrderStatusChange is a validated transition handed to storage. Storage
// applies it only if the order is still in From.
type OrderStatusChange struct {
	OrderID        int64
	From           OrderStatus
	To             OrderStatus
	TrackingNumber string
	ChangedBy      int64
	ChangedAt      time.Time
}
