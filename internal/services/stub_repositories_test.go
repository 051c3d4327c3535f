package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/repositories"
)

type stubCatalogRepository struct {
	catalog domain.Catalog
	loadErr error
	putErr  error
	puts    []string
}

func (s *stubCatalogRepository) Load(context.Context) (domain.Catalog, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.catalog == nil {
		return nil, repositories.ErrCatalogMissing
	}
	return s.catalog, nil
}

func (s *stubCatalogRepository) Replace(_ context.Context, catalog domain.Catalog) error {
	s.catalog = catalog
	return nil
}

func (s *stubCatalogRepository) Get(_ context.Context, productID string) (domain.Product, error) {
	product, ok := s.catalog[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %s", repositories.ErrNotFound, productID)
	}
	return product, nil
}

func (s *stubCatalogRepository) Put(_ context.Context, productID string, product domain.Product) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.catalog == nil {
		s.catalog = domain.Catalog{}
	}
	s.catalog[productID] = product
	s.puts = append(s.puts, productID)
	return nil
}

func (s *stubCatalogRepository) Delete(_ context.Context, productID string) error {
	if _, ok := s.catalog[productID]; !ok {
		return fmt.Errorf("%w: product %s", repositories.ErrNotFound, productID)
	}
	delete(s.catalog, productID)
	return nil
}

type stubReviewRepository struct {
	reviews   []domain.Review
	appendErr error
}

func (s *stubReviewRepository) List(context.Context) ([]domain.Review, error) {
	return s.reviews, nil
}

func (s *stubReviewRepository) Append(_ context.Context, review domain.Review) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.reviews = append(s.reviews, review)
	return nil
}

func (s *stubReviewRepository) Update(_ context.Context, id domain.ID, patch map[string]any) (domain.Review, error) {
	for i, review := range s.reviews {
		if review.ID.String() == id.String() {
			if text, ok := patch["text"].(string); ok {
				review.Text = text
			}
			if name, ok := patch["name"].(string); ok {
				review.Name = name
			}
			s.reviews[i] = review
			return review, nil
		}
	}
	return domain.Review{}, repositories.ErrNotFound
}

func (s *stubReviewRepository) Delete(_ context.Context, id domain.ID) (int, error) {
	kept := s.reviews[:0]
	for _, review := range s.reviews {
		if review.ID.String() != id.String() {
			kept = append(kept, review)
		}
	}
	removed := len(s.reviews) - len(kept)
	s.reviews = kept
	return removed, nil
}

type stubOrderRepository struct {
	orders    []domain.Order
	appendErr error
}

func (s *stubOrderRepository) List(context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepository) Append(_ context.Context, order domain.Order) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.orders = append(s.orders, order)
	return nil
}

type stubAdminRepository struct {
	cfg     domain.AdminConfig
	loadErr error
	saved   *domain.AdminConfig
}

func (s *stubAdminRepository) Load(context.Context) (domain.AdminConfig, error) {
	if s.loadErr != nil {
		return domain.AdminConfig{}, s.loadErr
	}
	if s.cfg == (domain.AdminConfig{}) {
		return domain.DefaultAdminConfig(), nil
	}
	return s.cfg, nil
}

func (s *stubAdminRepository) Save(_ context.Context, cfg domain.AdminConfig) error {
	s.cfg = cfg
	s.saved = &cfg
	return nil
}

type stubMediaRemover struct {
	removed []mediastore.SavedMedia
	err     error
}

func (s *stubMediaRemover) Remove(saved mediastore.SavedMedia) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, saved)
	return nil
}

var errStorage = errors.New("storage failed")
