package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/adapters/memory"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	adminSession = domain.Session{UserID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}
	userSession  = domain.Session{UserID: 2, Email: "user@example.com", Role: domain.RoleUser}
)

type MockOrderEvents struct {
	mock.Mock
}

func (m *MockOrderEvents) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	args := m.Called(ctx, order, previous)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter domain.OrderListFilter) (*domain.OrderPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderPage), args.Error(1)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, change domain.OrderStatusChange) (*domain.Order, error) {
	args := m.Called(ctx, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func loadSeed(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.LoadSeedFile("../../adapters/memory/testdata/seed.json")
	require.NoError(t, err)
	return store
}

func TestUpdateOrderStatus_PaidMarksListingSold(t *testing.T) {
	store := loadSeed(t)
	events := new(MockOrderEvents)
	events.On("PublishOrderStatusChanged", mock.Anything, mock.AnythingOfType("*domain.Order"), domain.OrderPending).Return(nil)

	uc, err := NewUpdateOrderStatusUseCase(store, events)
	require.NoError(t, err)
	fixed := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	order, err := uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{
		OrderID: 100,
		Status:  domain.OrderPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPaid, order.Status)
	assert.Equal(t, fixed, order.UpdatedAt)

	status, ok := store.ListingStatus(1)
	require.True(t, ok)
	assert.Equal(t, domain.ListingSold, status)

	history := store.History()
	require.Len(t, history, 1)
	assert.Equal(t, domain.OrderPending, history[0].From)
	assert.Equal(t, int64(1), history[0].ChangedBy)
	events.AssertExpectations(t)
}

func TestUpdateOrderStatus_CancelReactivatesListing(t *testing.T) {
	store := loadSeed(t)
	events := new(MockOrderEvents)
	events.On("PublishOrderStatusChanged", mock.Anything, mock.Anything, domain.OrderPaid).Return(nil)

	uc, err := NewUpdateOrderStatusUseCase(store, events)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{
		OrderID: 101,
		Status:  domain.OrderCancelled,
	})
	require.NoError(t, err)

	status, _ := store.ListingStatus(5)
	assert.Equal(t, domain.ListingActive, status)
}

func TestUpdateOrderStatus_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		session domain.Session
		cmd     domain.UpdateOrderStatusCommand
		wantErr error
	}{
		{
			name:    "non admin",
			session: userSession,
			cmd:     domain.UpdateOrderStatusCommand{OrderID: 100, Status: domain.OrderPaid},
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "skipping a state",
			session: adminSession,
			cmd:     domain.UpdateOrderStatusCommand{OrderID: 100, Status: domain.OrderShipped, TrackingNumber: "1Z999"},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "shipping without tracking",
			session: adminSession,
			cmd:     domain.UpdateOrderStatusCommand{OrderID: 101, Status: domain.OrderShipped, TrackingNumber: "   "},
			wantErr: domain.ErrTrackingRequired,
		},
		{
			name:    "unknown order",
			session: adminSession,
			cmd:     domain.UpdateOrderStatusCommand{OrderID: 999, Status: domain.OrderPaid},
			wantErr: domain.ErrOrderNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loadSeed(t)
			events := new(MockOrderEvents)
			uc, err := NewUpdateOrderStatusUseCase(store, events)
			require.NoError(t, err)

			_, err = uc.Execute(context.Background(), tt.session, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.History())
			events.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateOrderStatus_ShipKeepsTrackingNumber(t *testing.T) {
	store := loadSeed(t)
	events := new(MockOrderEvents)
	events.On("PublishOrderStatusChanged", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	uc, err := NewUpdateOrderStatusUseCase(store, events)
	require.NoError(t, err)

	shipped, err := uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{
		OrderID: 101, Status: domain.OrderShipped, TrackingNumber: " 1Z999 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "1Z999", shipped.TrackingNumber)

	delivered, err := uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{
		OrderID: 101, Status: domain.OrderDelivered,
	})
	require.NoError(t, err)
	assert.Equal(t, "1Z999", delivered.TrackingNumber)
}

func TestUpdateOrderStatus_ConflictIsReturned(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("GetOrder", mock.Anything, int64(7)).Return(&domain.Order{ID: 7, Status: domain.OrderPending}, nil)
	repo.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(c domain.OrderStatusChange) bool {
		return c.From == domain.OrderPending && c.To == domain.OrderPaid
	})).Return(nil, domain.ErrOrderConflict)
	events := new(MockOrderEvents)

	uc, err := NewUpdateOrderStatusUseCase(repo, events)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{OrderID: 7, Status: domain.OrderPaid})
	assert.ErrorIs(t, err, domain.ErrOrderConflict)
	events.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateOrderStatus_PublishFailureIsNotReturned(t *testing.T) {
	store := loadSeed(t)
	events := new(MockOrderEvents)
	events.On("PublishOrderStatusChanged", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	uc, err := NewUpdateOrderStatusUseCase(store, events)
	require.NoError(t, err)

	order, err := uc.Execute(context.Background(), adminSession, domain.UpdateOrderStatusCommand{OrderID: 100, Status: domain.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, order.Status)
}

func TestListOrders(t *testing.T) {
	store := loadSeed(t)
	uc := NewListOrdersUseCase(store)

	_, err := uc.Execute(context.Background(), userSession, domain.OrderListFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := uc.Execute(context.Background(), adminSession, domain.OrderListFilter{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, int64(101), page.Orders[0].ID, "newest first")
	assert.Equal(t, "iPhone 13 128GB", page.Orders[1].ListingTitle)

	paid, err := uc.Execute(context.Background(), adminSession, domain.OrderListFilter{Status: domain.OrderPaid})
	require.NoError(t, err)
	assert.Equal(t, 20, paid.Limit)
	require.Len(t, paid.Orders, 1)
	assert.Equal(t, int64(101), paid.Orders[0].ID)
}

func TestGetOrder(t *testing.T) {
	uc := NewGetOrderUseCase(loadSeed(t))

	order, err := uc.Execute(context.Background(), adminSession, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, order.Status)

	_, err = uc.Execute(context.Background(), adminSession, 404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = uc.Execute(context.Background(), userSession, 100)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
