// Package mediastore persists uploaded product media on local disk. Files are
// classified by declared content type into an images or videos directory and
// given a generated filename so concurrent uploads never collide.
package mediastore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies how an uploaded file is classified.
type Kind string

const (
	// KindImage marks files stored under the images directory.
	KindImage Kind = "image"
	// KindVideo marks files stored under the videos directory.
	KindVideo Kind = "video"
)

// ErrUnsupportedMedia indicates the upload declared a content type that is
// neither image/* nor video/*.
var ErrUnsupportedMedia = errors.New("mediastore: unsupported media type")

// SavedMedia describes a stored upload. PublicPath is the relative path served
// to clients (e.g. "videos/abc-clip.mp4"); DiskPath locates the file for
// removal.
type SavedMedia struct {
	Kind       Kind
	PublicPath string
	DiskPath   string
}

// Store writes uploads beneath a pair of type-specific directories.
type Store struct {
	imagesDir string
	videosDir string
}

// New constructs a Store rooted at the provided directories.
func New(imagesDir, videosDir string) (*Store, error) {
	imagesDir = strings.TrimSpace(imagesDir)
	videosDir = strings.TrimSpace(videosDir)
	if imagesDir == "" || videosDir == "" {
		return nil, errors.New("mediastore: images and videos directories are required")
	}
	return &Store{imagesDir: imagesDir, videosDir: videosDir}, nil
}

// Classify maps a declared content type to a media kind.
func Classify(contentType string) (Kind, error) {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, contentType)
	}
}

// Save stores the upload and returns where it landed. The generated filename
// keeps the original base name for operator readability but prefixes a unique
// token to avoid overwriting.
func (s *Store) Save(contentType, originalName string, r io.Reader) (SavedMedia, error) {
	if s == nil {
		return SavedMedia{}, errors.New("mediastore: store not initialised")
	}
	kind, err := Classify(contentType)
	if err != nil {
		return SavedMedia{}, err
	}

	dir := s.imagesDir
	if kind == KindVideo {
		dir = s.videosDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedMedia{}, fmt.Errorf("mediastore: create %s: %w", dir, err)
	}

	name := uuid.NewString() + "-" + sanitizeFilename(originalName)
	diskPath := filepath.Join(dir, name)

	f, err := os.OpenFile(diskPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return SavedMedia{}, fmt.Errorf("mediastore: create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(diskPath)
		return SavedMedia{}, fmt.Errorf("mediastore: write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(diskPath)
		return SavedMedia{}, fmt.Errorf("mediastore: close file: %w", err)
	}

	return SavedMedia{
		Kind:       kind,
		PublicPath: path.Join(filepath.Base(dir), name),
		DiskPath:   diskPath,
	}, nil
}

// Remove deletes a previously saved file. Used to reap uploads whose product
// record was rejected, so no orphaned file remains on disk.
func (s *Store) Remove(saved SavedMedia) error {
	if strings.TrimSpace(saved.DiskPath) == "" {
		return nil
	}
	if err := os.Remove(saved.DiskPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("mediastore: remove %s: %w", saved.DiskPath, err)
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
