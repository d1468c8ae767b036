// Package template provides the template store: a name-to-image-bytes
// lookup over the configured template directory.
package template

import "context"

// Store defines the template lookup interface.
type Store interface {
	// Get returns the raw image bytes for a template name.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - name: template name without extension.
	// Returns:
	//   - []byte: template image bytes.
	//   - error: domain.ErrTemplateNotFound when no file backs the name.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns all available template names, sorted.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - []string: template names without extensions.
	//   - error: non-nil if the directory scan fails.
	List(ctx context.Context) ([]string, error)
}
