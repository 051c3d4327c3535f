package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azadstore/storefront/internal/platform/httpx"
	"github.com/azadstore/storefront/internal/services"
)

const maxOrderBodySize = 256 * 1024

// OrderHandlers exposes the order list/create endpoints.
type OrderHandlers struct {
	orders services.OrderService
}

// NewOrderHandlers constructs a new OrderHandlers instance.
func NewOrderHandlers(orders services.OrderService) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

// Routes registers the /orders endpoints.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/orders", h.listOrders)
	r.Post("/orders", h.createOrder)
}

func (h *OrderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("order_service_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	orders, err := h.orders.List(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to read orders", http.StatusInternalServerError))
		return
	}
	if orders == nil {
		orders = []services.Order{}
	}

	writeJSONResponse(w, http.StatusOK, orders)
}

func (h *OrderHandlers) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("order_service_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxOrderBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var order services.Order
	if err := json.Unmarshal(body, &order); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	created, err := h.orders.Create(ctx, order)
	if err != nil {
		if errors.Is(err, services.ErrOrderInvalidInput) {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "order must contain at least one item", http.StatusBadRequest))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to record order", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, created)
}
