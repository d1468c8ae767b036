package domain

import (
	"errors"
	"fmt"
)

// Typed failure conditions surfaced by the generation pipeline.
// Handlers map these to HTTP status codes; the renderer itself never
// produces them.
var (
	// ErrTemplateNotFound indicates the requested template name has no
	// backing image file.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateDecode indicates the template bytes could not be decoded
	// as an image.
	ErrTemplateDecode = errors.New("template image decode failed")

	// ErrOutputEncode indicates the rendered meme could not be encoded or
	// persisted.
	ErrOutputEncode = errors.New("meme output encode failed")

	// ErrInvalidArgument indicates a request field failed validation at
	// the boundary.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Default style values applied when a request omits them.
const (
	DefaultFontSize    = 40
	DefaultFontColor   = "white"
	DefaultStrokeColor = "black"
	DefaultStrokeWidth = 2

	MinFontSize    = 10
	MaxFontSize    = 200
	MinStrokeWidth = 0
	MaxStrokeWidth = 10
)

// GenerateRequest is a validated meme generation request.
// Gin binding tags enforce the declared ranges at the HTTP boundary;
// tool-call arguments go through RequestFromToolArgs instead.
type GenerateRequest struct {
	TemplateName string `json:"template_name" binding:"required"`
	TopText      string `json:"top_text" binding:"required"`
	BottomText   string `json:"bottom_text,omitempty"`
	FontSize     int    `json:"font_size,omitempty" binding:"omitempty,min=10,max=200"`
	FontColor    string `json:"font_color,omitempty"`
	StrokeColor  string `json:"stroke_color,omitempty"`
	StrokeWidth  *int   `json:"stroke_width,omitempty" binding:"omitempty,min=0,max=10"`
}

// ApplyDefaults fills omitted style fields with the configured defaults.
// Parameters:
//   - fontSize, fontColor, strokeColor, strokeWidth: process-wide defaults.
// Returns: none (mutates the request in place).
func (r *GenerateRequest) ApplyDefaults(fontSize int, fontColor, strokeColor string, strokeWidth int) {
	if r.FontSize == 0 {
		r.FontSize = fontSize
	}
	if r.FontColor == "" {
		r.FontColor = fontColor
	}
	if r.StrokeColor == "" {
		r.StrokeColor = strokeColor
	}
	if r.StrokeWidth == nil {
		w := strokeWidth
		r.StrokeWidth = &w
	}
}

// Validate checks the request ranges after defaulting.
// Parameters: none.
// Returns:
//   - error: ErrInvalidArgument-wrapped description of the first violation.
func (r *GenerateRequest) Validate() error {
	if r.TemplateName == "" {
		return fmt.Errorf("%w: template_name is required", ErrInvalidArgument)
	}
	if r.TopText == "" {
		return fmt.Errorf("%w: top_text is required", ErrInvalidArgument)
	}
	if r.FontSize < MinFontSize || r.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font_size %d outside [%d,%d]", ErrInvalidArgument, r.FontSize, MinFontSize, MaxFontSize)
	}
	if r.StrokeWidth != nil && (*r.StrokeWidth < MinStrokeWidth || *r.StrokeWidth > MaxStrokeWidth) {
		return fmt.Errorf("%w: stroke_width %d outside [%d,%d]", ErrInvalidArgument, *r.StrokeWidth, MinStrokeWidth, MaxStrokeWidth)
	}
	if _, err := ParseColor(r.FontColor); err != nil {
		return fmt.Errorf("%w: font_color: %v", ErrInvalidArgument, err)
	}
	if _, err := ParseColor(r.StrokeColor); err != nil {
		return fmt.Errorf("%w: stroke_color: %v", ErrInvalidArgument, err)
	}
	return nil
}

// GenerateResult describes a completed meme generation.
type GenerateResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	MemeURL  string `json:"meme_url,omitempty"`
}

// TemplateList is the response payload for the template listing endpoint.
type TemplateList struct {
	Templates []string `json:"templates"`
	Count     int      `json:"count"`
}
