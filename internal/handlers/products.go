package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/azadstore/storefront/internal/platform/httpx"
	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/services"
)

const (
	maxUploadSize  = 64 << 20
	mediaFormField = "mediaFile"
)

// MediaSaver persists an uploaded product media file and reports where it
// landed. *mediastore.Store satisfies it.
type MediaSaver interface {
	Save(contentType, originalName string, r io.Reader) (mediastore.SavedMedia, error)
}

// ProductHandlers exposes per-product catalog mutations, including multipart
// media uploads.
type ProductHandlers struct {
	catalog services.CatalogService
	media   MediaSaver
}

// NewProductHandlers constructs a new ProductHandlers instance.
func NewProductHandlers(catalog services.CatalogService, media MediaSaver) *ProductHandlers {
	return &ProductHandlers{catalog: catalog, media: media}
}

// Routes registers the product mutation endpoints.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/add-product", h.addProduct)
	r.Put("/products/{productID}", h.updateProduct)
	r.Delete("/products/{productID}", h.deleteProduct)
}

func (h *ProductHandlers) addProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil || h.media == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid multipart payload", http.StatusBadRequest))
		return
	}

	cmd := services.AddProductCommand{
		ID:          strings.TrimSpace(r.FormValue("id")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	saved, ok := h.saveUpload(ctx, w, r, true)
	if !ok {
		return
	}
	cmd.Media = saved

	product, err := h.catalog.AddProduct(ctx, cmd)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product added successfully.",
		"product": product,
	})
}

func (h *ProductHandlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid multipart payload", http.StatusBadRequest))
		return
	}

	cmd := services.UpdateProductCommand{ID: strings.TrimSpace(chi.URLParam(r, "productID"))}
	for field, target := range map[string]**string{
		"name":        &cmd.Name,
		"price":       &cmd.Price,
		"category":    &cmd.Category,
		"description": &cmd.Description,
	} {
		if values, ok := r.MultipartForm.Value[field]; ok && len(values) > 0 {
			value := strings.TrimSpace(values[0])
			*target = &value
		}
	}

	if hasUpload(r) {
		saved, ok := h.saveUpload(ctx, w, r, false)
		if !ok {
			return
		}
		cmd.Media = saved
	}

	product, err := h.catalog.UpdateProduct(ctx, cmd)
	if err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product updated successfully.",
		"product": product,
	})
}

func (h *ProductHandlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_service_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if err := h.catalog.DeleteProduct(ctx, productID); err != nil {
		writeCatalogError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product " + productID + " deleted.",
	})
}

// saveUpload stores the mediaFile part. A missing part is a 400 when the file
// is required, otherwise the caller skips media handling entirely.
func (h *ProductHandlers) saveUpload(ctx context.Context, w http.ResponseWriter, r *http.Request, required bool) (*mediastore.SavedMedia, bool) {
	file, header, err := r.FormFile(mediaFormField)
	if err != nil {
		if required {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "missing required fields (id, name, price, category, mediaFile)", http.StatusBadRequest))
			return nil, false
		}
		return nil, true
	}
	defer file.Close()

	saved, err := h.media.Save(header.Header.Get("Content-Type"), header.Filename, file)
	if err != nil {
		if errors.Is(err, mediastore.ErrUnsupportedMedia) {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "unsupported media type", http.StatusBadRequest))
			return nil, false
		}
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to store uploaded media", http.StatusInternalServerError))
		return nil, false
	}
	return &saved, true
}

func hasUpload(r *http.Request) bool {
	if r.MultipartForm == nil {
		return false
	}
	return len(r.MultipartForm.File[mediaFormField]) > 0
}

func writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "missing required fields (id, name, price, category, mediaFile)", http.StatusBadRequest))
	case errors.Is(err, services.ErrProductExists):
		httpx.WriteError(ctx, w, httpx.NewError("product_exists", "product with this id already exists", http.StatusBadRequest))
	case errors.Is(err, services.ErrProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal", "catalog operation failed", http.StatusInternalServerError))
	}
}
