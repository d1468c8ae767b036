package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/prompts"
)

// AIGenerateResult is the outcome of a prompt-driven generation.
// Generated is false when the model answered in text without requesting
// a meme, in which case AIText carries the answer.
type AIGenerateResult struct {
	Result    *domain.GenerateResult
	AIText    string
	Generated bool
}

// AIService turns natural language prompts into meme generations by
// letting a language model pick the template and captions via tool calls.
type AIService struct {
	provider ToolCallingProvider
	memes    *MemeService
}

// NewAIService creates the prompt-driven generation service.
// Parameters:
//   - provider: tool-calling language model provider.
//   - memes: generation service used to execute tool calls.
//
// Returns:
//   - *AIService: initialized service.
func NewAIService(provider ToolCallingProvider, memes *MemeService) *AIService {
	return &AIService{
		provider: provider,
		memes:    memes,
	}
}

// Provider returns the name of the configured provider.
func (s *AIService) Provider() string {
	return s.provider.Name()
}

// GenerateFromPrompt asks the model to fulfill the prompt with the meme
// tools and executes the first generate_meme call it makes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prompt: user's natural language request.
//
// Returns:
//   - *AIGenerateResult: generated meme or the model's text answer.
//   - error: non-nil if the model call or the generation fails.
func (s *AIService) GenerateFromPrompt(ctx context.Context, prompt string) (*AIGenerateResult, error) {
	start := time.Now()
	ctx = logger.SetProvider(ctx, s.provider.Name())

	list, err := s.memes.Templates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result, err := s.provider.GenerateWithTools(ctx, prompt, BuildToolCatalog(list.Templates))
	if err != nil {
		return nil, err
	}

	for _, call := range result.Calls {
		switch call.Name {
		case prompts.ToolGenerateMeme:
			req, err := RequestFromToolArgs(call.Args)
			if err != nil {
				return nil, err
			}
			generated, err := s.memes.Generate(ctx, req, GenerationOrigin{
				Prompt:   prompt,
				Provider: s.provider.Name(),
			})
			if err != nil {
				return nil, err
			}

			logger.With(logger.Fields{
				logger.FieldProvider: s.provider.Name(),
				logger.FieldTemplate: req.TemplateName,
			}).WithDuration(time.Since(start).Milliseconds()).
				Info(ctx, "Meme generated from prompt")

			return &AIGenerateResult{
				Result:    generated,
				AIText:    result.Text,
				Generated: true,
			}, nil

		case prompts.ToolListTemplates:
			// Answered locally; the model gets the same catalog it was
			// offered, so no second round trip is needed.
			return &AIGenerateResult{
				AIText: templateAnswer(list.Templates, result.Text),
			}, nil

		default:
			logger.CtxWarn(ctx, "Model requested unknown tool: %s", call.Name)
		}
	}

	return &AIGenerateResult{AIText: result.Text}, nil
}

// templateAnswer formats the template list as a text answer, keeping any
// text the model produced alongside the tool call.
func templateAnswer(templates []string, modelText string) string {
	answer := fmt.Sprintf("Available meme templates: %s", strings.Join(templates, ", "))
	if modelText != "" {
		return modelText + "\n\n" + answer
	}
	return answer
}
