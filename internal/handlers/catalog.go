package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azadstore/storefront/internal/platform/httpx"
	"github.com/azadstore/storefront/internal/repositories"
	"github.com/azadstore/storefront/internal/services"
)

const maxCatalogBodySize = 4 << 20

// CatalogHandlers exposes the whole-document catalog endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs a new CatalogHandlers instance.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Routes registers the /id endpoints.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/id", h.fetchCatalog)
	r.Put("/id", h.replaceCatalog)
}

func (h *CatalogHandlers) fetchCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	catalog, err := h.catalog.Fetch(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrCatalogMissing) {
			httpx.WriteError(ctx, w, httpx.NewError("catalog_not_found", "catalog file not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to read catalog", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, catalog)
}

func (h *CatalogHandlers) replaceCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxCatalogBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var catalog services.Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	if err := h.catalog.Replace(ctx, catalog); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to write catalog", http.StatusInternalServerError))
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errEmptyBody):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is required", http.StatusBadRequest))
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}
