package template

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/timmy/memeforge/internal/domain"
)

// imageExtensions is the probe order for template lookup and the filter for
// directory listing.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// FSStore is a filesystem-backed template store. Template name is the file
// stem; extension is resolved by probing in a fixed order.
type FSStore struct {
	dir string
}

// NewFSStore creates a filesystem template store, creating the directory if
// it does not exist.
// Parameters:
//   - dir: template directory path.
// Returns:
//   - *FSStore: initialized store.
//   - error: non-nil if the directory cannot be created.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create template directory: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Get returns the template image bytes for a name.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: template name without extension.
// Returns:
//   - []byte: image bytes.
//   - error: domain.ErrTemplateNotFound if no candidate file exists.
func (s *FSStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reject path traversal in template names.
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}

	for _, ext := range imageExtensions {
		path := filepath.Join(s.dir, name+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
}

// List returns the sorted stems of all template image files.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: sorted template names.
//   - error: non-nil if the directory scan fails.
func (s *FSStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isImageExtension(ext) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[stem] {
			seen[stem] = true
			names = append(names, stem)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isImageExtension(ext string) bool {
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
