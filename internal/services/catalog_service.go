package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/azadstore/storefront/internal/domain"
	"github.com/azadstore/storefront/internal/platform/mediastore"
	"github.com/azadstore/storefront/internal/platform/requestctx"
	"github.com/azadstore/storefront/internal/repositories"

	"go.uber.org/zap"
)

// defaultVideoThumbnail is attached to video products that ship without a
// poster frame of their own.
const defaultVideoThumbnail = "images/a1.png"

var (
	// ErrProductExists indicates an add-product call reused an existing id.
	ErrProductExists = errors.New("catalog service: product id already exists")
	// ErrProductNotFound indicates the referenced product is absent from the catalog.
	ErrProductNotFound = errors.New("catalog service: product not found")
	// ErrCatalogInvalidInput indicates required fields were missing from a mutation.
	ErrCatalogInvalidInput = errors.New("catalog service: invalid input")
)

// MediaRemover detaches uploaded files that ended up unreferenced.
type MediaRemover interface {
	Remove(saved mediastore.SavedMedia) error
}

// CatalogServiceDeps bundles constructor inputs for the catalog service.
type CatalogServiceDeps struct {
	Catalog repositories.CatalogRepository
	Media   MediaRemover
}

type catalogService struct {
	repo     repositories.CatalogRepository
	media    MediaRemover
	validate *validator.Validate
}

// NewCatalogService constructs the catalog service with the supplied dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Catalog == nil {
		return nil, errors.New("catalog service: catalog repository is required")
	}
	return &catalogService{
		repo:     deps.Catalog,
		media:    deps.Media,
		validate: validator.New(),
	}, nil
}

func (s *catalogService) Fetch(ctx context.Context) (Catalog, error) {
	return s.repo.Load(ctx)
}

func (s *catalogService) Replace(ctx context.Context, catalog Catalog) error {
	return s.repo.Replace(ctx, catalog)
}

func (s *catalogService) AddProduct(ctx context.Context, cmd AddProductCommand) (Product, error) {
	cmd.ID = strings.TrimSpace(cmd.ID)
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Price = strings.TrimSpace(cmd.Price)
	cmd.Category = strings.TrimSpace(cmd.Category)
	cmd.Description = strings.TrimSpace(cmd.Description)

	if err := s.validate.Struct(cmd); err != nil {
		s.discardUpload(ctx, cmd.Media)
		return Product{}, fmt.Errorf("%w: %v", ErrCatalogInvalidInput, err)
	}

	if _, err := s.repo.Get(ctx, cmd.ID); err == nil {
		// Reap the upload so a rejected create leaves no orphaned file.
		s.discardUpload(ctx, cmd.Media)
		return Product{}, fmt.Errorf("%w: %s", ErrProductExists, cmd.ID)
	} else if !repositories.IsNotFound(err) {
		s.discardUpload(ctx, cmd.Media)
		return Product{}, err
	}

	product := Product{
		Name:        cmd.Name,
		Price:       cmd.Price,
		Category:    cmd.Category,
		Description: cmd.Description,
	}
	applyMedia(&product, cmd.Media)

	if err := s.repo.Put(ctx, cmd.ID, product); err != nil {
		s.discardUpload(ctx, cmd.Media)
		return Product{}, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (Product, error) {
	cmd.ID = strings.TrimSpace(cmd.ID)
	if err := s.validate.Struct(cmd); err != nil {
		s.discardUpload(ctx, cmd.Media)
		return Product{}, fmt.Errorf("%w: %v", ErrCatalogInvalidInput, err)
	}

	product, err := s.repo.Get(ctx, cmd.ID)
	if err != nil {
		s.discardUpload(ctx, cmd.Media)
		if repositories.IsNotFound(err) {
			return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, cmd.ID)
		}
		return Product{}, err
	}

	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) != "" {
		product.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Price != nil && strings.TrimSpace(*cmd.Price) != "" {
		product.Price = strings.TrimSpace(*cmd.Price)
	}
	if cmd.Category != nil && strings.TrimSpace(*cmd.Category) != "" {
		product.Category = strings.TrimSpace(*cmd.Category)
	}
	if cmd.Description != nil {
		product.Description = strings.TrimSpace(*cmd.Description)
	}
	applyMedia(&product, cmd.Media)

	if err := s.repo.Put(ctx, cmd.ID, product); err != nil {
		return Product{}, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return err
	}
	return nil
}

// applyMedia rewires the product's media fields for a fresh upload. Switching
// to an image clears the stale video URL; switching to a video keeps any
// existing thumbnail as the poster frame.
func applyMedia(product *domain.Product, media *mediastore.SavedMedia) {
	if media == nil {
		return
	}
	switch media.Kind {
	case mediastore.KindVideo:
		product.MediaType = domain.MediaTypeVideo
		product.VideoURL = media.PublicPath
		if product.Thumbnail == "" {
			product.Thumbnail = defaultVideoThumbnail
		}
	default:
		product.MediaType = domain.MediaTypeImage
		product.Thumbnail = media.PublicPath
		product.VideoURL = ""
	}
}

func (s *catalogService) discardUpload(ctx context.Context, media *mediastore.SavedMedia) {
	if s.media == nil || media == nil {
		return
	}
	if err := s.media.Remove(*media); err != nil {
		requestctx.Logger(ctx).Warn("failed to remove rejected upload",
			zap.String("path", media.DiskPath), zap.Error(err))
	}
}
