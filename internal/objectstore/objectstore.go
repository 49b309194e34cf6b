// Package objectstore persists uploaded media (avatars, cover images,
// post photos, boost proofs) and hands back stable URLs for them.
package objectstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store abstracts where uploads live. Paths are forward-slash relative
// keys like "uploads/avatars/amy.png".
type Store interface {
	Upload(path string, data []byte) error
	PublicURL(path string) string
}

// DirStore keeps uploads on the local filesystem under a root directory.
type DirStore struct {
	root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Upload writes data to a temp file and renames it into place so readers
// never observe a partial write.
func (s *DirStore) Upload(path string, data []byte) error {
	clean, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0700); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(clean), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, clean); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize upload: %w", err)
	}
	return nil
}

// PublicURL returns a file URL for the stored object. It does not check
// that the object exists.
func (s *DirStore) PublicURL(path string) string {
	clean, err := s.resolve(path)
	if err != nil {
		return ""
	}
	return "file://" + filepath.ToSlash(clean)
}

func (s *DirStore) resolve(path string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(path))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.root, rel), nil
}
