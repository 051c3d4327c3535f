package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azadstore/storefront/internal/client/state"
	"github.com/azadstore/storefront/internal/domain"
)

type stubOrderPoster struct {
	posted []domain.Order
	err    error
}

func (s *stubOrderPoster) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if s.err != nil {
		return domain.Order{}, s.err
	}
	s.posted = append(s.posted, order)
	return order, nil
}

type stubInvoicePresenter struct {
	invoices []Invoice
	err      error
}

func (s *stubInvoicePresenter) Present(invoice Invoice) error {
	if s.err != nil {
		return s.err
	}
	s.invoices = append(s.invoices, invoice)
	return nil
}

type stubLinkOpener struct {
	phone string
	text  string
	calls int
	err   error
}

func (s *stubLinkOpener) Open(phone, text string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.phone = phone
	s.text = text
	return nil
}

type fixture struct {
	manager  *Manager
	store    *state.Store
	poster   *stubOrderPoster
	invoices *stubInvoicePresenter
	links    *stubLinkOpener
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := state.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	poster := &stubOrderPoster{}
	invoices := &stubInvoicePresenter{}
	links := &stubLinkOpener{}

	manager, err := NewManager(ManagerDeps{
		Store:        store,
		Orders:       poster,
		Invoices:     invoices,
		Links:        links,
		ContactPhone: "252614476099",
		Clock:        func() time.Time { return time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return &fixture{manager: manager, store: store, poster: poster, invoices: invoices, links: links}
}

func TestManagerAddMergesByID(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "PUBG 600 UC", Price: "$10", Qty: 2}))
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "PUBG 600 UC", Price: "$10", Qty: 3}))

	items := f.manager.Items()
	require.Len(t, items, 1, "repeated ids merge into one entry")
	assert.Equal(t, 5, items[0].Qty)
}

func TestManagerAddDefaultsQty(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "PUBG 600 UC", Price: "$10"}))

	items := f.manager.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Qty)
}

func TestManagerRemove(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "A", Price: "$10"}))
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "254", Name: "B", Price: "$20"}))

	require.NoError(t, f.manager.Remove(0))
	items := f.manager.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.ID("254"), items[0].ProductID)

	require.NoError(t, f.manager.Remove(5), "out-of-range index is ignored")
	assert.Len(t, f.manager.Items(), 1)
}

func TestManagerTotal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "1", Name: "A", Price: "$10", Qty: 2}))
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "2", Name: "B", Price: "$20.50", Qty: 1}))

	assert.Equal(t, 40.50, f.manager.Total())
}

func TestManagerTotalUnparsablePriceIsZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "1", Name: "A", Price: "contact us", Qty: 3}))
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "2", Name: "B", Price: "$5", Qty: 1}))

	assert.Equal(t, 5.0, f.manager.Total())
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Checkout(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)

	assert.Empty(t, f.poster.posted, "no server POST on empty cart")
	assert.Empty(t, f.invoices.invoices)
	assert.Zero(t, f.links.calls, "no external link on empty cart")

	var history []domain.Order
	assert.False(t, f.store.Get(state.KeyOrders, &history), "no order persisted")
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "PUBG 600 UC", Price: "$10", Qty: 2}))
	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "305", Name: "eFootball 500 Coins", Price: "$20.50", Qty: 1}))

	order, err := f.manager.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "40.50", order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.False(t, order.ID.IsZero(), "order gets a time-based id")

	var history []domain.Order
	require.True(t, f.store.Get(state.KeyOrders, &history))
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	require.Len(t, f.poster.posted, 1)
	require.Len(t, f.invoices.invoices, 1)
	assert.Equal(t, "40.50", f.invoices.invoices[0].Total)
	assert.Equal(t, "252614476099", f.links.phone)
	assert.Contains(t, f.links.text, "PUBG 600 UC x2")

	assert.Empty(t, f.manager.Items(), "cart clears after checkout")
}

func TestCheckoutSideEffectsAreIsolated(t *testing.T) {
	f := newFixture(t)
	f.poster.err = errors.New("server down")
	f.invoices.err = errors.New("popup blocked")

	require.NoError(t, f.manager.Add(domain.CartEntry{ProductID: "253", Name: "PUBG 600 UC", Price: "$10", Qty: 1}))

	order, err := f.manager.Checkout(context.Background())
	require.NoError(t, err, "failed side effects never fail the checkout")
	assert.Equal(t, "10.00", order.Total)

	var history []domain.Order
	require.True(t, f.store.Get(state.KeyOrders, &history), "local persist survives server failure")
	require.Len(t, history, 1)

	assert.Equal(t, 1, f.links.calls, "link opener still runs after earlier failures")
	assert.Empty(t, f.manager.Items(), "cart still clears")
}
