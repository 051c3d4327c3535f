package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/repositories"
)

// CatalogRepository stores the product catalog as a single JSON object mapping
// product id to product record.
type CatalogRepository struct {
	path string
}

// NewCatalogRepository constructs a catalog repository backed by path.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog repository: file path is required")
	}
	return &CatalogRepository{path: path}, nil
}

// Load reads the full catalog. A missing file is reported as
// repositories.ErrCatalogMissing so the handler can answer 404.
func (r *CatalogRepository) Load(_ context.Context) (domain.Catalog, error) {
	catalog := domain.Catalog{}
	if err := readJSONFile(r.path, &catalog); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repositories.ErrCatalogMissing
		}
		return nil, err
	}
	return catalog, nil
}

// Replace overwrites the whole catalog document. The incoming mapping is not
// validated beyond being a JSON object; malformed entries are the caller's
// problem downstream, as they always were.
func (r *CatalogRepository) Replace(_ context.Context, catalog domain.Catalog) error {
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	return writeJSONFile(r.path, catalog)
}

// Get returns one product by id.
func (r *CatalogRepository) Get(ctx context.Context, productID string) (domain.Product, error) {
	catalog, err := r.loadOrEmpty(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	product, ok := catalog[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %s", repositories.ErrNotFound, productID)
	}
	return product, nil
}

// Put inserts or overwrites one product within the catalog document.
func (r *CatalogRepository) Put(ctx context.Context, productID string, product domain.Product) error {
	catalog, err := r.loadOrEmpty(ctx)
	if err != nil {
		return err
	}
	catalog[productID] = product
	return writeJSONFile(r.path, catalog)
}

// Delete removes one product from the catalog document.
func (r *CatalogRepository) Delete(ctx context.Context, productID string) error {
	catalog, err := r.loadOrEmpty(ctx)
	if err != nil {
		return err
	}
	if _, ok := catalog[productID]; !ok {
		return fmt.Errorf("%w: product %s", repositories.ErrNotFound, productID)
	}
	delete(catalog, productID)
	return writeJSONFile(r.path, catalog)
}

// loadOrEmpty treats a missing catalog file as an empty mapping for mutation
// paths, matching create-on-first-write behaviour.
func (r *CatalogRepository) loadOrEmpty(ctx context.Context) (domain.Catalog, error) {
	catalog, err := r.Load(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrCatalogMissing) {
			return domain.Catalog{}, nil
		}
		return nil, err
	}
	return catalog, nil
}
