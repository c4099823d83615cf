package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/tasty-ordering/internal/order"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) ListOrders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, o *order.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	args := m.Called(ctx, orderID, status)
	return args.Bool(0), args.Error(1)
}

func TestOrderService_CreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		order      *order.Order
		repoID     int64
		repoErr    error
		wantErr    bool
		wantErrIs  error
		callsStore bool
	}{
		{
			name: "no_items",
			order: &order.Order{
				CustomerName: "Alice", CustomerPhone: "555", TotalAmount: 100,
			},
			wantErr:   true,
			wantErrIs: order.ErrEmptyOrder,
		},
		{
			name: "zero_quantity",
			order: &order.Order{
				CustomerName: "Alice", CustomerPhone: "555", TotalAmount: 100,
				Items: []order.LineItem{{Name: "Tea", Price: 50, Quantity: 0}},
			},
			wantErr:   true,
			wantErrIs: order.ErrInvalidItem,
		},
		{
			name: "negative_price",
			order: &order.Order{
				CustomerName: "Alice", CustomerPhone: "555", TotalAmount: 100,
				Items: []order.LineItem{{Name: "Tea", Price: -1, Quantity: 1}},
			},
			wantErr:   true,
			wantErrIs: order.ErrInvalidItem,
		},
		{
			name: "store_error",
			order: &order.Order{
				CustomerName: "Alice", CustomerPhone: "555", TotalAmount: 100,
				Items: []order.LineItem{{Name: "Tea", Price: 50, Quantity: 2}},
			},
			repoErr:    errors.New("connection reset"),
			wantErr:    true,
			callsStore: true,
		},
		{
			name: "successful_creation",
			order: &order.Order{
				CustomerName: "Alice", CustomerPhone: "555", TotalAmount: 100,
				Items: []order.LineItem{{Name: "Tea", Price: 50, Quantity: 2}},
			},
			repoID:     1,
			callsStore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := order.NewService(mockRepo)

			if tt.callsStore {
				mockRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).Return(tt.repoID, tt.repoErr).Once()
			}

			created, err := svc.CreateOrder(context.Background(), tt.order)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, created)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, created)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_CreateOrder_ForcesPendingStatusAndKeepsTotal(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := order.NewService(mockRepo)

	input := &order.Order{
		ID:            77,
		CustomerName:  "Alice",
		CustomerPhone: "555",
		Status:        "已完成",
		// deliberately not 50*2
		TotalAmount: 120,
		Items:       []order.LineItem{{ID: 9, OrderID: 9, Name: "Tea", Price: 50, Quantity: 2}},
	}

	mockRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.ID == 0 &&
			o.Status == order.StatusPending &&
			o.TotalAmount == 120 &&
			o.Items[0].ID == 0 && o.Items[0].OrderID == 0 &&
			o.Items[0].Name == "Tea" && o.Items[0].Price == 50 && o.Items[0].Quantity == 2
	})).Return(int64(1), nil).Once()

	created, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.Equal(t, 120, created.TotalAmount)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_ListOrders(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := order.NewService(mockRepo)

	now := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	stored := []order.Order{
		{ID: 2, CustomerName: "Bob", Status: order.StatusPending, CreatedAt: now},
		{ID: 1, CustomerName: "Alice", Status: order.StatusCompleted, CreatedAt: now.Add(-time.Minute)},
	}
	mockRepo.On("ListOrders", mock.Anything).Return(stored, nil).Once()

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, orders)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		found   bool
		repoErr error
		wantErr bool
	}{
		{name: "known_label", status: order.StatusCooking, found: true},
		{name: "arbitrary_label", status: "banana", found: true},
		{name: "unknown_order_is_ignored", status: "banana", found: false},
		{name: "store_error", status: "banana", repoErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockOrderRepository)
			svc := order.NewService(mockRepo)

			mockRepo.On("UpdateOrderStatus", mock.Anything, int64(3), tt.status).Return(tt.found, tt.repoErr).Once()

			err := svc.UpdateOrderStatus(context.Background(), 3, tt.status)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
