// Package cart manages the locally persisted shopping cart and the checkout
// pipeline.
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/domain"
)

// ErrEmptyCart signals a checkout attempt with nothing in the cart. The
// caller surfaces it to the user; no state changes and no side effects run.
var ErrEmptyCart = errors.New("cart: cart is empty")

// OrderPoster submits an order to the server. *apiclient.Client satisfies it.
type OrderPoster interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
}

// InvoicePresenter shows the user a static invoice view for a completed
// checkout.
type InvoicePresenter interface {
	Present(invoice Invoice) error
}

// LinkOpener opens the external messaging deep link pre-filled with the order
// summary.
type LinkOpener interface {
	Open(phone, text string) error
}

// Invoice is the render-ready checkout summary.
type Invoice struct {
	Lines []string
	Total string
}

// Manager owns the cart list. The durable store is the only source of truth;
// every mutation writes through immediately.
type Manager struct {
	store    *state.Store
	orders   OrderPoster
	invoices InvoicePresenter
	links    LinkOpener
	phone    string
	clock    func() time.Time
	logger   *zap.Logger
}

// ManagerDeps bundles constructor inputs for the cart manager.
type ManagerDeps struct {
	Store        *state.Store
	Orders       OrderPoster
	Invoices     InvoicePresenter
	Links        LinkOpener
	ContactPhone string
	Clock        func() time.Time
	Logger       *zap.Logger
}

// NewManager constructs the cart manager.
func NewManager(deps ManagerDeps) (*Manager, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("cart: state store is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    deps.Store,
		orders:   deps.Orders,
		invoices: deps.Invoices,
		links:    deps.Links,
		phone:    deps.ContactPhone,
		clock:    clock,
		logger:   logger,
	}, nil
}

// Items returns the current cart contents.
func (m *Manager) Items() []domain.CartEntry {
	var items []domain.CartEntry
	m.store.Get(state.KeyCart, &items)
	return items
}

// Add merges by product id, summing quantities. A qty below 1 defaults to 1.
func (m *Manager) Add(entry domain.CartEntry) error {
	if entry.Qty < 1 {
		entry.Qty = 1
	}
	items := m.Items()
	merged := false
	for i := range items {
		if items[i].ProductID.String() == entry.ProductID.String() {
			items[i].Qty += entry.Qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, entry)
	}
	return m.store.Put(state.KeyCart, items)
}

// Remove drops the entry at index. Out-of-range indexes are ignored.
func (m *Manager) Remove(index int) error {
	items := m.Items()
	if index < 0 || index >= len(items) {
		return nil
	}
	items = append(items[:index], items[index+1:]...)
	return m.store.Put(state.KeyCart, items)
}

// Checkout turns the cart into an Order and runs the four delivery side
// effects: local order history, best-effort server POST, invoice view, and
// the external messaging link. Each effect is isolated; one failing never
// blocks the rest. The cart is cleared afterwards.
func (m *Manager) Checkout(ctx context.Context) (domain.Order, error) {
	items := m.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	order := m.buildOrder(items)
	invoice := buildInvoice(items, order.Total)

	if err := m.appendLocalOrder(order); err != nil {
		m.logger.Warn("local order persist failed", zap.Error(err))
	}

	if m.orders != nil {
		if _, err := m.orders.CreateOrder(ctx, order); err != nil {
			m.logger.Warn("order sync failed, local copy stands", zap.Error(err))
		}
	}

	if m.invoices != nil {
		if err := m.invoices.Present(invoice); err != nil {
			m.logger.Warn("invoice view failed", zap.Error(err))
		}
	}

	if m.links != nil {
		if err := m.links.Open(m.phone, strings.Join(invoice.Lines, "\n")); err != nil {
			m.logger.Warn("messaging link failed", zap.Error(err))
		}
	}

	if err := m.store.Put(state.KeyCart, []domain.CartEntry{}); err != nil {
		m.logger.Warn("cart clear failed", zap.Error(err))
	}

	return order, nil
}

// Total computes the current cart total: parse each price string's numeric
// content, multiply by quantity, sum, round to two decimals.
func (m *Manager) Total() float64 {
	return computeTotal(m.Items())
}

func (m *Manager) buildOrder(items []domain.CartEntry) domain.Order {
	now := m.clock().UTC()
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	return domain.Order{
		ID:     domain.ID(strconv.FormatInt(now.UnixMilli(), 10)),
		Items:  orderItems,
		Total:  formatTotal(computeTotal(items)),
		Date:   now,
		Status: domain.OrderStatusPending,
	}
}

func (m *Manager) appendLocalOrder(order domain.Order) error {
	var history []domain.Order
	m.store.Get(state.KeyOrders, &history)
	history = append(history, order)
	return m.store.Put(state.KeyOrders, history)
}

func buildInvoice(items []domain.CartEntry, total string) Invoice {
	lines := make([]string, 0, len(items)+1)
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s x%d (%s)", item.Name, item.Qty, item.Price))
	}
	lines = append(lines, "Total: $"+total)
	return Invoice{Lines: lines, Total: total}
}

func computeTotal(items []domain.CartEntry) float64 {
	var total float64
	for _, item := range items {
		total += domain.ParsePrice(item.Price) * float64(item.Qty)
	}
	return math.Round(total*100) / 100
}

func formatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', 2, 64)
}
