package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/timmy/memeforge/internal/domain"
)

// RequestFromToolArgs converts untyped tool call arguments into a typed
// generation request. Arguments arrive as generic JSON values, so numbers may
// be float64 regardless of the declared integer type. Style defaulting and
// full validation happen in MemeService.Generate.
// Parameters:
//   - args: raw argument map from a generate_meme tool call.
//
// Returns:
//   - *domain.GenerateRequest: typed request.
//   - error: domain.ErrInvalidArgument wrapped with the offending field.
func RequestFromToolArgs(args map[string]interface{}) (*domain.GenerateRequest, error) {
	req := &domain.GenerateRequest{}

	templateName, err := stringArg(args, "template_name", true)
	if err != nil {
		return nil, err
	}
	req.TemplateName = templateName

	topText, err := stringArg(args, "top_text", true)
	if err != nil {
		return nil, err
	}
	req.TopText = topText

	bottomText, err := stringArg(args, "bottom_text", false)
	if err != nil {
		return nil, err
	}
	req.BottomText = bottomText

	fontSize, ok, err := intArg(args, "font_size")
	if err != nil {
		return nil, err
	}
	if ok {
		if fontSize < domain.MinFontSize || fontSize > domain.MaxFontSize {
			return nil, fmt.Errorf("%w: font_size %d outside [%d,%d]",
				domain.ErrInvalidArgument, fontSize, domain.MinFontSize, domain.MaxFontSize)
		}
		req.FontSize = fontSize
	}

	return req, nil
}

func stringArg(args map[string]interface{}, key string, required bool) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("%w: missing required argument %q", domain.ErrInvalidArgument, key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %q must be a string, got %T", domain.ErrInvalidArgument, key, raw)
	}
	if required && s == "" {
		return "", fmt.Errorf("%w: argument %q cannot be empty", domain.ErrInvalidArgument, key)
	}
	return s, nil
}

func intArg(args map[string]interface{}, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false, fmt.Errorf("%w: argument %q must be an integer, got %v", domain.ErrInvalidArgument, key, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("%w: argument %q must be an integer, got %s", domain.ErrInvalidArgument, key, v.String())
		}
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%w: argument %q must be an integer, got %T", domain.ErrInvalidArgument, key, raw)
	}
}
