package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyOrder  = errors.New("order must contain at least one item")
	ErrInvalidItem = errors.New("invalid order item")
)

type Service interface {
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, orderInput *Order) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

type service struct {
	orderRepo Repository
}

func NewService(orderRepo Repository) Service {
	return &service{orderRepo: orderRepo}
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

// CreateOrder persists the order with the default status. TotalAmount is kept
// exactly as supplied.
func (s *service) CreateOrder(ctx context.Context, orderInput *Order) (*Order, error) {
	if len(orderInput.Items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, ErrEmptyOrder
	}

	for i := range orderInput.Items {
		item := &orderInput.Items[i]

		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for %q must be greater than zero", ErrInvalidItem, item.Name)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: price for %q cannot be negative", ErrInvalidItem, item.Name)
		}

		item.ID = 0
		item.OrderID = 0
	}

	orderInput.ID = 0
	orderInput.Status = StatusPending

	orderID, err := s.orderRepo.CreateOrder(ctx, orderInput)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().
		Int64("order_id", orderID).
		Int("items", len(orderInput.Items)).
		Int("total_amount", orderInput.TotalAmount).
		Msg("service: order created successfully")

	return orderInput, nil
}

// UpdateOrderStatus stores status verbatim. Any string is accepted, and an
// unknown order id is a silent no-op.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	found, err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Str("new_status", status).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}
	if !found {
		log.Debug().Int64("order_id", orderID).Msg("service: status update on unknown order ignored")
		return nil
	}

	log.Info().Int64("order_id", orderID).Str("new_status", status).Msg("service: order status updated")
	return nil
}
