package video

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the byte-store boundary. Keys are slash-separated and
// relative ("videos/12.mp4", "thumbnails/12.jpg"). Path exposes a real
// filesystem location because the external tools operate on files, not
// streams.
type Store interface {
	Write(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Exists(key string) bool
	Remove(key string) error
	Rename(oldKey, newKey string) error
	Path(key string) string
}

// DiskStore keeps bytes on the local filesystem under a single root
// directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	// Pre-create the two prefixes: the external tools write their
	// outputs straight to Path(key) and do not create directories.
	for _, dir := range []string{abs, filepath.Join(abs, videoPrefix), filepath.Join(abs, thumbnailPrefix)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create media directory: %w", err)
		}
	}
	return &DiskStore{root: abs}, nil
}

// Path maps a storage key to its absolute filesystem path.
func (s *DiskStore) Path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *DiskStore) Write(key string, r io.Reader) (int64, error) {
	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("create directory for %s: %w", key, err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", key, err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, r)
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", key, err)
	}
	return n, nil
}

func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(key))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

func (s *DiskStore) Exists(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// Remove deletes the bytes for key. A missing file is not an error:
// deletion is best-effort throughout the pipeline.
func (s *DiskStore) Remove(key string) error {
	err := os.Remove(s.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Rename(oldKey, newKey string) error {
	newPath := s.Path(newKey)
	if err := os.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", newKey, err)
	}
	if err := os.Rename(s.Path(oldKey), newPath); err != nil {
		return fmt.Errorf("rename %s to %s: %w", oldKey, newKey, err)
	}
	return nil
}

// URLPath returns the public path for a stored key under the static
// media mount.
func URLPath(key string) string {
	return "/media/" + strings.TrimPrefix(key, "/")
}
