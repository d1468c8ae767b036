package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/prompts"
)

// ToolParam describes one parameter of a declared tool in a
// provider-neutral form; each provider converts it to its own schema type.
type ToolParam struct {
	Type        string // "string" or "integer"
	Description string
	Enum        []string
	Default     interface{}
}

// Tool is one declarative entry of the tool catalog.
type Tool struct {
	Name        string
	Description string
	Params      map[string]ToolParam
	Required    []string
}

// ToolCall is a structured tool invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolCallResult is the explicit outcome of a tool-calling model request:
// free text plus zero or more structured calls. A nil result with a non-nil
// error means the request to the model itself failed; an empty Calls slice
// means the model chose not to call any tool.
type ToolCallResult struct {
	Text  string
	Calls []ToolCall
}

// ToolCallingProvider is the tool-calling language model collaborator.
type ToolCallingProvider interface {
	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string

	// GenerateWithTools sends the prompt with the tool catalog and returns
	// the model's text and tool calls.
	GenerateWithTools(ctx context.Context, prompt string, tools []Tool) (*ToolCallResult, error)
}

// BuildToolCatalog returns the declared tool list with the template name
// enum filled from the live template store contents.
// Parameters:
//   - templates: available template names.
// Returns:
//   - []Tool: tool catalog for the providers.
func BuildToolCatalog(templates []string) []Tool {
	return []Tool{
		{
			Name:        prompts.ToolGenerateMeme,
			Description: "Generates a meme image by adding text to a meme template. Use this when the user wants to create a funny meme or add humorous captions to popular meme formats.",
			Params: map[string]ToolParam{
				"template_name": {
					Type:        "string",
					Description: "The name of the meme template to use",
					Enum:        templates,
				},
				"top_text": {
					Type:        "string",
					Description: "The text to display at the top of the meme. This is usually the setup or first part of the joke.",
				},
				"bottom_text": {
					Type:        "string",
					Description: "The text to display at the bottom of the meme. This is usually the punchline. Optional for some meme formats.",
				},
				"font_size": {
					Type:        "integer",
					Description: "Font size for the text (default: 40, range: 10-200)",
					Default:     domain.DefaultFontSize,
				},
			},
			Required: []string{"template_name", "top_text"},
		},
		{
			Name:        prompts.ToolListTemplates,
			Description: "Returns a list of all available meme templates that can be used for meme generation.",
			Params:      map[string]ToolParam{},
		},
	}
}

// ProviderRegistry manages tool-calling providers by name.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]ToolCallingProvider
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{providers: make(map[string]ToolCallingProvider)}
}

// Register adds a provider to the registry.
// Parameters:
//   - p: provider to register; must have a unique non-empty name.
// Returns:
//   - error: non-nil on nil provider, empty name, or duplicate.
func (r *ProviderRegistry) Register(p ToolCallingProvider) error {
	if p == nil {
		return fmt.Errorf("cannot register nil provider")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider already registered: %s", name)
	}
	r.providers[name] = p
	return nil
}

// Get returns a provider by name.
// Parameters:
//   - name: provider identifier.
// Returns:
//   - ToolCallingProvider: registered provider.
//   - error: non-nil if no provider has that name.
func (r *ProviderRegistry) Get(name string) (ToolCallingProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return p, nil
}

// List returns all registered provider names, sorted.
func (r *ProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
