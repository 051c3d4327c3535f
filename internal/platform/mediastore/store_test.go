package mediastore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveClassifiesByContentType(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "images"), filepath.Join(root, "videos"))
	require.NoError(t, err)

	img, err := store.Save("image/png", "screenshot.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, KindImage, img.Kind)
	require.True(t, strings.HasPrefix(img.PublicPath, "images/"), "public path %q", img.PublicPath)
	require.FileExists(t, img.DiskPath)

	vid, err := store.Save("video/mp4", "clip.mp4", strings.NewReader("mp4-bytes"))
	require.NoError(t, err)
	require.Equal(t, KindVideo, vid.Kind)
	require.True(t, strings.HasPrefix(vid.PublicPath, "videos/"), "public path %q", vid.PublicPath)
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "images"), filepath.Join(root, "videos"))
	require.NoError(t, err)

	_, err = store.Save("application/pdf", "doc.pdf", strings.NewReader("%PDF"))
	require.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestSaveAvoidsCollisions(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "images"), filepath.Join(root, "videos"))
	require.NoError(t, err)

	first, err := store.Save("image/png", "same.png", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save("image/png", "same.png", strings.NewReader("two"))
	require.NoError(t, err)
	require.NotEqual(t, first.DiskPath, second.DiskPath)
}

func TestRemoveDeletesFile(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "images"), filepath.Join(root, "videos"))
	require.NoError(t, err)

	saved, err := store.Save("image/jpeg", "photo.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(saved))
	_, statErr := os.Stat(saved.DiskPath)
	require.True(t, os.IsNotExist(statErr))

	// Removing twice is harmless.
	require.NoError(t, store.Remove(saved))
}

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "my_file.png", sanitizeFilename("my file.png"))
	require.Equal(t, "upload", sanitizeFilename("  "))
	require.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
}
