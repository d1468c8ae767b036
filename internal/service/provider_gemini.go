package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/timmy/memeforge/internal/prompts"
)

// GeminiProvider calls the Gemini API with function declarations.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	Model  string
	APIKey string
}

// NewGeminiProvider creates a provider backed by the Gemini API.
// Parameters:
//   - ctx: context for client initialization.
//   - cfg: provider configuration including model and API key.
//
// Returns:
//   - *GeminiProvider: initialized provider.
//   - error: non-nil if the client cannot be created.
func NewGeminiProvider(ctx context.Context, cfg *GeminiConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// GenerateWithTools sends the prompt with the tool catalog and returns
// the model's text and parsed function calls.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: user request text.
//   - tools: tool catalog to expose to the model.
//
// Returns:
//   - *ToolCallResult: model text plus any structured tool calls.
//   - error: non-nil if the API request fails.
func (p *GeminiProvider) GenerateWithTools(ctx context.Context, prompt string, tools []Tool) (*ToolCallResult, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: convertGeminiTools(tools),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompts.MemeSystemPrompt}},
		},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini API: %w", err)
	}

	result := &ToolCallResult{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		result.Calls = append(result.Calls, ToolCall{
			Name: fc.Name,
			Args: fc.Args,
		})
	}
	return result, nil
}

func convertGeminiTools(tools []Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]*genai.Schema, len(t.Params))
		for name, param := range t.Params {
			props[name] = &genai.Schema{
				Type:        geminiType(param.Type),
				Description: param.Description,
				Enum:        param.Enum,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Required,
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
