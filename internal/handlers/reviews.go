package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/httpx"
	"github.com/azadstore/storefront/internal/services"
)

const maxReviewBodySize = 32 * 1024

// ReviewHandlers exposes the review CRUD endpoints.
type ReviewHandlers struct {
	reviews services.ReviewService
}

// NewReviewHandlers constructs a new ReviewHandlers instance.
func NewReviewHandlers(reviews services.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviews}
}

// Routes registers the /reviews endpoints.
func (h *ReviewHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/reviews", h.listReviews)
	r.Post("/reviews", h.createReview)
	r.Put("/reviews/{reviewID}", h.updateReview)
	r.Delete("/reviews/{reviewID}", h.deleteReview)
}

func (h *ReviewHandlers) listReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_service_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	reviews, err := h.reviews.List(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal", "failed to read reviews", http.StatusInternalServerError))
		return
	}
	if reviews == nil {
		reviews = []services.Review{}
	}

	writeJSONResponse(w, http.StatusOK, reviews)
}

func (h *ReviewHandlers) createReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_service_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxReviewBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req createReviewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	review, err := h.reviews.Create(ctx, services.CreateReviewCommand{
		ID:        req.ID,
		ProductID: req.ProductID,
		Name:      strings.TrimSpace(req.Name),
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		writeReviewError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, review)
}

func (h *ReviewHandlers) updateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_service_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxReviewBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var patch map[string]any
	if err := json.Unmarshal(body, &patch); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	review, err := h.reviews.Update(ctx, domain.ID(chi.URLParam(r, "reviewID")), patch)
	if err != nil {
		writeReviewError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, review)
}

func (h *ReviewHandlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_service_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	removed, err := h.reviews.Delete(ctx, domain.ID(chi.URLParam(r, "reviewID")))
	if err != nil {
		writeReviewError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"ok": true, "removed": removed})
}

type createReviewRequest struct {
	ID        domain.ID `json:"id"`
	ProductID domain.ID `json:"productId"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
}

func writeReviewError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrReviewInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid review payload", http.StatusBadRequest))
	case errors.Is(err, services.ErrReviewNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("review_not_found", "review not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal", "review operation failed", http.StatusInternalServerError))
	}
}
