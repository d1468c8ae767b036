package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/memeforge/internal/prompts"
)

// OpenAIProvider calls an OpenAI-compatible Chat Completions endpoint
// with function-calling tools.
type OpenAIProvider struct {
	client   *resty.Client
	model    string
	endpoint string
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	Model   string
	APIKey  string
	BaseURL string
}

// NewOpenAIProvider creates a provider backed by the Chat Completions API.
// Parameters:
//   - cfg: provider configuration including model and API key.
//
// Returns:
//   - *OpenAIProvider: initialized provider.
func NewOpenAIProvider(cfg *OpenAIConfig) *OpenAIProvider {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(60 * time.Second)

	// Default to OpenAI compatible endpoint if not specified
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	endpoint := baseURL + "/chat/completions"

	return &OpenAIProvider{
		client:   client,
		model:    cfg.Model,
		endpoint: endpoint,
	}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Tools    []chatTool    `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  chatSchema `json:"parameters"`
}

type chatSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]chatProperty `json:"properties"`
	Required   []string                `json:"required,omitempty"`
}

type chatProperty struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateWithTools sends the prompt with the tool catalog and returns
// the model's text and parsed tool calls.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: user request text.
//   - tools: tool catalog to expose to the model.
//
// Returns:
//   - *ToolCallResult: model text plus any structured tool calls.
//   - error: non-nil if the API request fails or returns malformed arguments.
func (p *OpenAIProvider) GenerateWithTools(ctx context.Context, prompt string, tools []Tool) (*ToolCallResult, error) {
	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompts.MemeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Tools: convertChatTools(tools),
	}

	var resp chatResponse
	httpResp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(p.endpoint)

	if err != nil {
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}

	// Check HTTP status code
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else {
			// Include response body for debugging
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return nil, fmt.Errorf("chat API returned error: %s", errorMsg)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("chat API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		errorMsg := fmt.Sprintf("no choices in response (status: %d)", httpResp.StatusCode())
		if len(httpResp.Body()) > 0 {
			errorMsg += fmt.Sprintf(", response body: %s", string(httpResp.Body()))
		}
		return nil, fmt.Errorf("no response from chat API: %s", errorMsg)
	}

	msg := resp.Choices[0].Message
	result := &ToolCallResult{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		args := make(map[string]interface{})
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("failed to parse tool call arguments for %s: %w", tc.Function.Name, err)
			}
		}
		result.Calls = append(result.Calls, ToolCall{
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return result, nil
}

func convertChatTools(tools []Tool) []chatTool {
	out := make([]chatTool, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]chatProperty, len(t.Params))
		for name, param := range t.Params {
			props[name] = chatProperty{
				Type:        param.Type,
				Description: param.Description,
				Enum:        param.Enum,
				Default:     param.Default,
			}
		}
		out = append(out, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters: chatSchema{
					Type:       "object",
					Properties: props,
					Required:   t.Required,
				},
			},
		})
	}
	return out
}
