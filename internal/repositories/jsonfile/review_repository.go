package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/repositories"
)

// ReviewRepository stores reviews as a flat JSON array.
type ReviewRepository struct {
	path string
}

// NewReviewRepository constructs a review repository backed by path.
func NewReviewRepository(path string) (*ReviewRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("review repository: file path is required")
	}
	return &ReviewRepository{path: path}, nil
}

// List returns all stored reviews. A missing file is an empty list.
func (r *ReviewRepository) List(_ context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := readJSONFile(r.path, &reviews); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Review{}, nil
		}
		return nil, err
	}
	return reviews, nil
}

// Append adds a review to the end of the list.
func (r *ReviewRepository) Append(ctx context.Context, review domain.Review) error {
	reviews, err := r.List(ctx)
	if err != nil {
		return err
	}
	reviews = append(reviews, review)
	return writeJSONFile(r.path, reviews)
}

// Update merges the patch document into the stored review matched by id.
// Only keys present in the patch overwrite stored fields; everything else is
// preserved.
func (r *ReviewRepository) Update(ctx context.Context, id domain.ID, patch map[string]any) (domain.Review, error) {
	reviews, err := r.List(ctx)
	if err != nil {
		return domain.Review{}, err
	}

	idx := -1
	for i, review := range reviews {
		if review.ID.String() == id.String() {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Review{}, fmt.Errorf("%w: review %s", repositories.ErrNotFound, id)
	}

	merged, err := mergeReview(reviews[idx], patch)
	if err != nil {
		return domain.Review{}, err
	}
	reviews[idx] = merged

	if err := writeJSONFile(r.path, reviews); err != nil {
		return domain.Review{}, err
	}
	return merged, nil
}

// Delete removes the review matched by id and reports how many records were
// dropped (zero when the id was unknown).
func (r *ReviewRepository) Delete(ctx context.Context, id domain.ID) (int, error) {
	reviews, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	kept := reviews[:0]
	for _, review := range reviews {
		if review.ID.String() != id.String() {
			kept = append(kept, review)
		}
	}
	removed := len(reviews) - len(kept)

	if err := writeJSONFile(r.path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// mergeReview round-trips the stored review through a generic map so patch
// keys overlay stored keys field by field.
func mergeReview(stored domain.Review, patch map[string]any) (domain.Review, error) {
	base, err := json.Marshal(stored)
	if err != nil {
		return domain.Review{}, fmt.Errorf("jsonfile: encode review: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(base, &doc); err != nil {
		return domain.Review{}, fmt.Errorf("jsonfile: decode review: %w", err)
	}
	for k, v := range patch {
		doc[k] = v
	}
	mergedRaw, err := json.Marshal(doc)
	if err != nil {
		return domain.Review{}, fmt.Errorf("jsonfile: encode merged review: %w", err)
	}
	var merged domain.Review
	if err := json.Unmarshal(mergedRaw, &merged); err != nil {
		return domain.Review{}, fmt.Errorf("jsonfile: decode merged review: %w", err)
	}
	return merged, nil
}
