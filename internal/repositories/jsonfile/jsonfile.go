// Package jsonfile implements the repository interfaces over flat JSON files,
// one file per resource, read-modify-written on every call.
//
// Known limitation: there is no file locking and no optimistic concurrency
// check, so concurrent writers to the same resource can race (last writer
// wins). This mirrors the deployed behaviour this store replaced and is kept
// deliberately; individual writes are still atomic at the file level via a
// temp-file rename, so a crashed request never leaves a partial document.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/azadstore/storefront/internal/repositories"
)

// Registry bundles the four flat-file repositories.
type Registry struct {
	catalog *CatalogRepository
	reviews *ReviewRepository
	orders  *OrderRepository
	admin   *AdminConfigRepository
}

// NewRegistry constructs repositories for the provided file paths.
func NewRegistry(catalogFile, reviewsFile, ordersFile, adminFile string) (*Registry, error) {
	catalog, err := NewCatalogRepository(catalogFile)
	if err != nil {
		return nil, err
	}
	reviews, err := NewReviewRepository(reviewsFile)
	if err != nil {
		return nil, err
	}
	orders, err := NewOrderRepository(ordersFile)
	if err != nil {
		return nil, err
	}
	admin, err := NewAdminConfigRepository(adminFile)
	if err != nil {
		return nil, err
	}
	return &Registry{catalog: catalog, reviews: reviews, orders: orders, admin: admin}, nil
}

// Catalog returns the catalog repository.
func (r *Registry) Catalog() repositories.CatalogRepository { return r.catalog }

// Reviews returns the review repository.
func (r *Registry) Reviews() repositories.ReviewRepository { return r.reviews }

// Orders returns the order repository.
func (r *Registry) Orders() repositories.OrderRepository { return r.orders }

// AdminConfig returns the admin config repository.
func (r *Registry) AdminConfig() repositories.AdminConfigRepository { return r.admin }

// readJSONFile decodes path into out. A missing file returns os.ErrNotExist;
// callers decide whether that means "not found" or "empty default".
func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("jsonfile: empty document")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("jsonfile: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSONFile writes val to path as indented JSON through a temp-file rename
// so readers never observe a partially written document.
func writeJSONFile(path string, val any) error {
	data, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", filepath.Base(path), err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("jsonfile: rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
