// Package orders records completed purchase intents: the local history is
// written first and always survives; the server POST is fire-and-forget.
package orders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/domain"
)

// Poster submits an order to the server. *apiclient.Client satisfies it.
type Poster interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}

// Recorder appends orders to the durable local history and syncs them
// best-effort.
type Recorder struct {
	store  *state.Store
	poster Poster
	clock  func() time.Time
	logger *zap.Logger
}

// NewRecorder constructs the order recorder. The poster may be nil for a
// purely offline session.
func NewRecorder(store *state.Store, poster Poster, clock func() time.Time, logger *zap.Logger) (*Recorder, error) {
	if store == nil {
		return nil, fmt.Errorf("orders: state store is required")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, poster: poster, clock: clock, logger: logger}, nil
}

// Record persists the order locally, then POSTs it. A failed POST is logged
// and swallowed; the local copy is the durability backstop and the order is
// still returned as recorded.
func (r *Recorder) Record(ctx context.Context, order domain.Order) (domain.Order, error) {
	now := r.clock().UTC()
	if order.ID.IsZero() {
		order.ID = domain.ID(strconv.FormatInt(now.UnixMilli(), 10))
	}
	if order.Date.IsZero() {
		order.Date = now
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	var history []domain.Order
	r.store.Get(state.KeyOrders, &history)
	history = append(history, order)
	if err := r.store.Put(state.KeyOrders, history); err != nil {
		return domain.Order{}, fmt.Errorf("orders: persist history: %w", err)
	}

	if r.poster != nil {
		if _, err := r.poster.CreateOrder(ctx, order); err != nil {
			r.logger.Warn("order sync failed, local copy stands", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}
	return order, nil
}

// History returns the locally recorded orders.
func (r *Recorder) History() []domain.Order {
	var history []domain.Order
	r.store.Get(state.KeyOrders, &history)
	return history
}
