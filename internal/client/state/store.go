// Package state is the storefront's durable local store. Each key is an
// independent JSON file on disk, so corruption of one key never takes the
// others down with it: a missing or unreadable file simply yields the caller's
// default value.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Well-known storage keys.
const (
	KeyCart     = "cart"
	KeyOrders   = "orders"
	KeyReviews  = "reviews"
	KeyPayment  = "payment"
	KeyAutoplay = "autoplay"
	KeyLanguage = "lang"
)

// Store persists small JSON blobs keyed by name.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates the backing directory if needed.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("state: directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state: create directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Get unmarshals the stored value for key into out. A missing or corrupt file
// leaves out untouched and reports false; it is never a hard error.
func (s *Store) Get(key string, out any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("state entry corrupt, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put serialises value under key. The write goes through a temp file and
// rename so a crash never leaves a half-written entry.
func (s *Store) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("state: temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("state: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
