package services

import (
	"context"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/mediastore"
)

// Type aliases expose domain models to the services package without reversing
// dependency direction.
type (
	Catalog     = domain.Catalog
	Product     = domain.Product
	Order       = domain.Order
	Review      = domain.Review
	AdminConfig = domain.AdminConfig
)

// CatalogService manages the product catalog document and per-product
// mutations, including uploaded media bookkeeping.
type CatalogService interface {
	Fetch(ctx context.Context) (Catalog, error)
	Replace(ctx context.Context, catalog Catalog) error
	AddProduct(ctx context.Context, cmd AddProductCommand) (Product, error)
	UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// AddProductCommand carries the multipart create-product payload. Media must
// already be stored; on a duplicate id the service removes it again so the
// rejected upload leaves nothing behind.
type AddProductCommand struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	Price       string `validate:"required"`
	Category    string `validate:"required"`
	Description string
	Media       *mediastore.SavedMedia `validate:"required"`
}

// UpdateProductCommand carries a partial product update. Nil pointers leave
// the stored field untouched; Media, when present, switches the product's
// media type and clears the now-stale opposite field.
type UpdateProductCommand struct {
	ID          string `validate:"required"`
	Name        *string
	Price       *string
	Category    *string
	Description *string
	Media       *mediastore.SavedMedia
}

// ReviewService manages the server-side review list.
type ReviewService interface {
	List(ctx context.Context) ([]Review, error)
	Create(ctx context.Context, cmd CreateReviewCommand) (Review, error)
	Update(ctx context.Context, id domain.ID, patch map[string]any) (Review, error)
	Delete(ctx context.Context, id domain.ID) (removed int, err error)
}

// CreateReviewCommand carries a client-submitted review. The client may bring
// its own (optimistically assigned) id; the service assigns one when absent.
type CreateReviewCommand struct {
	ID        domain.ID
	ProductID domain.ID
	Name      string
	Rating    int `validate:"required,min=1,max=5"`
	Text      string
	Verified  bool
}

// OrderService records and lists orders. Client-supplied identifiers are
// trusted; the service only fills gaps.
type OrderService interface {
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, order Order) (Order, error)
}

// AuthService implements the flat-file credential checks.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error
}

// ChangePasswordCommand rotates the admin credentials after verifying the old
// password.
type ChangePasswordCommand struct {
	OldPassword string
	NewUsername string `validate:"required"`
	NewPassword string `validate:"required"`
}
