package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/timmy/memeforge/internal/prompts"
)

// AnthropicProvider calls the Anthropic Messages API with tool use.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// AnthropicConfig holds configuration for the Anthropic provider.
type AnthropicConfig struct {
	Model  string
	APIKey string
}

// NewAnthropicProvider creates a provider backed by the Messages API.
// Parameters:
//   - cfg: provider configuration including model and API key.
//
// Returns:
//   - *AnthropicProvider: initialized provider.
func NewAnthropicProvider(cfg *AnthropicConfig) *AnthropicProvider {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
	}
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// GenerateWithTools sends the prompt with the tool catalog and returns
// the model's text and parsed tool use blocks.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: user request text.
//   - tools: tool catalog to expose to the model.
//
// Returns:
//   - *ToolCallResult: model text plus any structured tool calls.
//   - error: non-nil if the API request fails or returns malformed input.
func (p *AnthropicProvider) GenerateWithTools(ctx context.Context, prompt string, tools []Tool) (*ToolCallResult, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: prompts.MemeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: convertAnthropicTools(tools),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call anthropic API: %w", err)
	}

	result := &ToolCallResult{}
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			result.Text += b.Text
		case anthropic.ToolUseBlock:
			args := make(map[string]interface{})
			if len(b.Input) > 0 {
				if err := json.Unmarshal(b.Input, &args); err != nil {
					return nil, fmt.Errorf("failed to parse tool input for %s: %w", b.Name, err)
				}
			}
			result.Calls = append(result.Calls, ToolCall{
				Name: b.Name,
				Args: args,
			})
		}
	}
	return result, nil
}

func convertAnthropicTools(tools []Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]interface{}, len(t.Params))
		for name, param := range t.Params {
			prop := map[string]interface{}{
				"type":        param.Type,
				"description": param.Description,
			}
			if len(param.Enum) > 0 {
				prop["enum"] = param.Enum
			}
			if param.Default != nil {
				prop["default"] = param.Default
			}
			props[name] = prop
		}
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name,
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: props,
					Required:   t.Required,
				},
			},
		})
	}
	return out
}
