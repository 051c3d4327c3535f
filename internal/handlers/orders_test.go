package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/services"
)

func newOrderRouter(svc *stubOrderService) http.Handler {
	return NewRouter(WithOrderRoutes(NewOrderHandlers(svc).Routes))
}

func TestOrderHandlersList(t *testing.T) {
	svc := &stubOrderService{orders: []services.Order{{ID: "o1", Total: "10.00"}}}
	rr := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got []services.Order
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestOrderHandlersCreate(t *testing.T) {
	t.Run("returns recorded order", func(t *testing.T) {
		svc := &stubOrderService{}
		body := `{"items":[{"id":253,"name":"PUBG 600 UC","price":"$10","qty":2}],"total":"20.00"}`
		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		if svc.created == nil {
			t.Fatalf("expected service invoked")
		}
		if svc.created.Items[0].ProductID != domain.ID("253") {
			t.Fatalf("numeric item id must decode to string: %+v", svc.created.Items)
		}
		var got services.Order
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.ID != "generated-id" {
			t.Fatalf("expected assigned id, got %q", got.ID)
		}
	})

	t.Run("empty items is 400", func(t *testing.T) {
		svc := &stubOrderService{createErr: services.ErrOrderInvalidInput}
		rr := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"items":[]}`)))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("empty body is 400", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newOrderRouter(&stubOrderService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/orders", nil))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}
