package jsonfile

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/azadstore/storefront/internal/domain"
)

// AdminConfigRepository stores the single admin credential record.
type AdminConfigRepository struct {
	path string
}

// NewAdminConfigRepository constructs an admin config repository backed by path.
func NewAdminConfigRepository(path string) (*AdminConfigRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("admin config repository: file path is required")
	}
	return &AdminConfigRepository{path: path}, nil
}

// Load returns the stored credentials, falling back to the built-in defaults
// when the file does not exist or cannot be decoded.
func (r *AdminConfigRepository) Load(_ context.Context) (domain.AdminConfig, error) {
	var cfg domain.AdminConfig
	if err := readJSONFile(r.path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultAdminConfig(), nil
		}
		return domain.AdminConfig{}, err
	}
	if strings.TrimSpace(cfg.Username) == "" && strings.TrimSpace(cfg.Password) == "" {
		return domain.DefaultAdminConfig(), nil
	}
	return cfg, nil
}

// Save overwrites the credential record.
func (r *AdminConfigRepository) Save(_ context.Context, cfg domain.AdminConfig) error {
	return writeJSONFile(r.path, cfg)
}
