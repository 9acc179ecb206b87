package memory

import (
	"cmp"
	"context"
	"marketplace-service/internal/core/domain"
	"slices"
)

func (s *Store) ListOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.OrderPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Order
	for _, o := range s.orders {
		if filter.Status == "" || o.Status == filter.Status {
			matched = append(matched, s.withTitle(o))
		}
	}
	slices.SortFunc(matched, func(a, b domain.Order) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(b.ID, a.ID))
	})

	orders := make([]domain.Order, 0, filter.Limit)
	if offset := (filter.Page - 1) * filter.Limit; offset < len(matched) {
		orders = append(orders, matched[offset:min(offset+filter.Limit, len(matched))]...)
	}
	return &domain.OrderPage{Orders: orders, Total: len(matched)}, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o = s.withTitle(o)
	return &o, nil
}

func (s *Store) UpdateStatus(ctx context.Context, change domain.OrderStatusChange) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[change.OrderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != change.From {
		return nil, domain.ErrOrderConflict
	}

	o.Status = change.To
	o.TrackingNumber = change.TrackingNumber
	o.UpdatedAt = change.ChangedAt
	s.orders[o.ID] = o

	for i := range s.listings {
		if s.listings[i].ID != o.ListingID {
			continue
		}
		switch {
		case change.To == domain.OrderPaid && s.listings[i].Status == domain.ListingActive:
			s.listings[i].Status = domain.ListingSold
		case change.To == domain.OrderCancelled && s.listings[i].Status == domain.ListingSold:
			s.listings[i].Status = domain.ListingActive
		}
	}
	s.history = append(s.history, change)

	o = s.withTitle(o)
	return &o, nil
}

// ListingStatus reports the stored status of any listing, active or not.
func (s *Store) ListingStatus(listingID int64) (domain.ListingStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.listings {
		if l.ID == listingID {
			return l.Status, true
		}
	}
	return "", false
}

func (s *Store) withTitle(o domain.Order) domain.Order {
	for _, l := range s.listings {
		if l.ID == o.ListingID {
			o.ListingTitle = l.Title
			break
		}
	}
	return o
}
