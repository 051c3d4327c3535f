package jsonfile

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/azadstore/storefront/internal/domain"
)

// OrderRepository stores orders as a flat JSON array.
type OrderRepository struct {
	path string
}

// NewOrderRepository constructs an order repository backed by path.
func NewOrderRepository(path string) (*OrderRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("order repository: file path is required")
	}
	return &OrderRepository{path: path}, nil
}

// List returns all recorded orders. A missing file is an empty list.
func (r *OrderRepository) List(_ context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := readJSONFile(r.path, &orders); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Order{}, nil
		}
		return nil, err
	}
	return orders, nil
}

// Append adds an order to the end of the list.
func (r *OrderRepository) Append(ctx context.Context, order domain.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	return writeJSONFile(r.path, orders)
}
