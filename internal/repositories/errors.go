package repositories

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist in its backing file.
	ErrNotFound = errors.New("repository: not found")
	// ErrCatalogMissing indicates the catalog file itself has never been written.
	ErrCatalogMissing = errors.New("repository: catalog file missing")
)

// IsNotFound reports whether err represents a missing record or missing catalog file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCatalogMissing)
}
