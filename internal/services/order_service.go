package services

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/repositories"
)

// ErrOrderInvalidInput indicates the submitted order failed validation.
var ErrOrderInvalidInput = errors.New("order service: invalid input")

// OrderServiceDeps bundles constructor inputs for the order service.
type OrderServiceDeps struct {
	Orders repositories.OrderRepository
	Clock  func() time.Time
	IDGen  func() domain.ID
}

type orderService struct {
	repo  repositories.OrderRepository
	clock func() time.Time
	idGen func() domain.ID
}

// NewOrderService constructs the order service with the supplied dependencies.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Orders == nil {
		return nil, errors.New("order service: order repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGen
	if idGen == nil {
		idGen = func() domain.ID { return domain.ID(ulid.Make().String()) }
	}
	return &orderService{
		repo:  deps.Orders,
		clock: func() time.Time { return clock().UTC() },
		idGen: idGen,
	}, nil
}

func (s *orderService) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// Create records the order. The client's id and timestamp are trusted when
// present; the service only fills gaps.
func (s *orderService) Create(ctx context.Context, order Order) (Order, error) {
	if len(order.Items) == 0 {
		return Order{}, ErrOrderInvalidInput
	}
	if order.ID.IsZero() {
		order.ID = s.idGen()
	}
	if order.Date.IsZero() {
		order.Date = s.clock()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if err := s.repo.Append(ctx, order); err != nil {
		return Order{}, err
	}
	return order, nil
}
