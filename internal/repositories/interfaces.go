package repositories

import (
	"context"

	"github.com/azadstore/storefront/internal/domain"
)

// Registry exposes typed repository accessors for dependency injection.
type Registry interface {
	Catalog() CatalogRepository
	Reviews() ReviewRepository
	Orders() OrderRepository
	AdminConfig() AdminConfigRepository
}

// CatalogRepository persists the whole product catalog as a single document.
// The catalog is read and replaced wholesale; per-product mutations are
// read-modify-write over the full mapping.
type CatalogRepository interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Replace(ctx context.Context, catalog domain.Catalog) error
	Get(ctx context.Context, productID string) (domain.Product, error)
	Put(ctx context.Context, productID string, product domain.Product) error
	Delete(ctx context.Context, productID string) error
}

// ReviewRepository persists the flat review list.
type ReviewRepository interface {
	List(ctx context.Context) ([]domain.Review, error)
	Append(ctx context.Context, review domain.Review) error
	// Update applies a partial merge: only fields present in the patch
	// document overwrite the stored record.
	Update(ctx context.Context, id domain.ID, patch map[string]any) (domain.Review, error)
	Delete(ctx context.Context, id domain.ID) (removed int, err error)
}

// OrderRepository persists the flat order list.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	Append(ctx context.Context, order domain.Order) error
}

// AdminConfigRepository persists the single admin credential record.
type AdminConfigRepository interface {
	// Load returns the stored credentials, or the built-in defaults when no
	// config file exists yet.
	Load(ctx context.Context) (domain.AdminConfig, error)
	Save(ctx context.Context, cfg domain.AdminConfig) error
}
