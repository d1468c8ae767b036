package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements ObjectStorage on a local directory. Generated
// memes land here when no object store is configured; the API serves the
// directory statically.
type LocalStorage struct {
	dir       string
	publicURL string
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	Dir       string
	PublicURL string
}

// NewLocalStorage creates a local filesystem storage client.
// Parameters:
//   - cfg: directory and public URL prefix configuration.
// Returns:
//   - *LocalStorage: initialized storage.
//   - error: non-nil if the directory path is empty.
func NewLocalStorage(cfg *LocalConfig) (*LocalStorage, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local storage directory is required")
	}
	return &LocalStorage{
		dir:       cfg.Dir,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Dir returns the backing directory path.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// EnsureBucket creates the backing directory if it doesn't exist.
func (s *LocalStorage) EnsureBucket(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}

// Upload writes an object to the directory.
func (s *LocalStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Download opens an object for reading.
func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return f, nil
}

// GetURL returns the public URL for accessing an object.
func (s *LocalStorage) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

// Delete removes an object file.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists checks if an object file exists.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// keyPath maps an object key to a path inside the storage directory,
// rejecting keys that would escape it.
func (s *LocalStorage) keyPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}
