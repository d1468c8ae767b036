package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sort"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/render"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/storage"
	"github.com/timmy/memeforge/internal/template"
)

const outputJPEGQuality = 95

// StyleDefaults holds the configured caption style applied to requests
// that omit style fields.
type StyleDefaults struct {
	FontSize    int
	FontColor   string
	StrokeColor string
	StrokeWidth int
}

// GenerationOrigin records how a generation was triggered, for the
// audit trail. Zero value means a direct API request.
type GenerationOrigin struct {
	Prompt   string
	Provider string
}

// MemeService orchestrates the generation pipeline: template lookup,
// caption rendering, encoding, upload, and history recording.
type MemeService struct {
	templates    template.Store
	storage      storage.ObjectStorage
	renderer     *render.Renderer
	generations  *repository.GenerationRepository
	defaults     StyleDefaults
	maxDimension int
}

// NewMemeService creates the generation service.
// Parameters:
//   - templates: template image store.
//   - store: object storage for rendered output.
//   - renderer: caption renderer.
//   - generations: history repository; may be nil to disable recording.
//   - defaults: configured caption style defaults.
//   - maxDimension: templates larger than this on either axis are downscaled;
//     0 disables downscaling.
//
// Returns:
//   - *MemeService: initialized service.
func NewMemeService(
	templates template.Store,
	store storage.ObjectStorage,
	renderer *render.Renderer,
	generations *repository.GenerationRepository,
	defaults StyleDefaults,
	maxDimension int,
) *MemeService {
	return &MemeService{
		templates:    templates,
		storage:      store,
		renderer:     renderer,
		generations:  generations,
		defaults:     defaults,
		maxDimension: maxDimension,
	}
}

// Generate renders the captions onto the named template, uploads the result,
// and records the attempt.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: generation request; defaults are applied in place.
//   - origin: prompt/provider metadata when triggered by a model tool call.
//
// Returns:
//   - *domain.GenerateResult: filename and public URL of the rendered meme.
//   - error: domain sentinel describing the failed stage.
func (s *MemeService) Generate(ctx context.Context, req *domain.GenerateRequest, origin GenerationOrigin) (*domain.GenerateResult, error) {
	start := time.Now()

	req.ApplyDefaults(s.defaults.FontSize, s.defaults.FontColor, s.defaults.StrokeColor, s.defaults.StrokeWidth)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = logger.SetTemplate(ctx, req.TemplateName)

	result, err := s.render(ctx, req)
	s.record(ctx, req, origin, result, err)
	if err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldTemplate: req.TemplateName,
	}).WithDuration(time.Since(start).Milliseconds()).
		WithStatus(string(domain.GenerationStatusSuccess)).
		Info(ctx, "Meme generated: %s", result.Filename)

	return result, nil
}

// render runs the pipeline stages that can fail without touching history.
func (s *MemeService) render(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResult, error) {
	data, err := s.templates.Get(ctx, req.TemplateName)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTemplateDecode, req.TemplateName, err)
	}
	img = s.downscale(img)

	fontColor, err := domain.ParseColor(req.FontColor)
	if err != nil {
		return nil, fmt.Errorf("%w: font_color: %v", domain.ErrInvalidArgument, err)
	}
	strokeColor, err := domain.ParseColor(req.StrokeColor)
	if err != nil {
		return nil, fmt.Errorf("%w: stroke_color: %v", domain.ErrInvalidArgument, err)
	}

	rendered := s.renderer.Render(img, req.TopText, req.BottomText, render.Style{
		FontSize:    req.FontSize,
		FontColor:   fontColor,
		StrokeColor: strokeColor,
		StrokeWidth: *req.StrokeWidth,
	})

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rendered, &jpeg.Options{Quality: outputJPEGQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOutputEncode, err)
	}

	filename := outputFilename(req.TemplateName)
	if err := s.storage.Upload(ctx, filename, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("%w: upload: %v", domain.ErrOutputEncode, err)
	}

	return &domain.GenerateResult{
		Success:  true,
		Message:  "Meme generated successfully",
		Filename: filename,
		MemeURL:  s.storage.GetURL(filename),
	}, nil
}

// downscale shrinks oversized templates so rendering and encoding stay
// bounded regardless of what gets dropped into the templates directory.
func (s *MemeService) downscale(img image.Image) image.Image {
	if s.maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= s.maxDimension && b.Dy() <= s.maxDimension {
		return img
	}
	return resize.Thumbnail(uint(s.maxDimension), uint(s.maxDimension), img, resize.Lanczos3)
}

// record persists the generation attempt. History recording is best effort
// and never fails the request.
func (s *MemeService) record(ctx context.Context, req *domain.GenerateRequest, origin GenerationOrigin, result *domain.GenerateResult, genErr error) {
	if s.generations == nil {
		return
	}

	gen := &domain.Generation{
		ID:           uuid.New().String(),
		TemplateName: req.TemplateName,
		TopText:      req.TopText,
		BottomText:   req.BottomText,
		FontSize:     req.FontSize,
		Prompt:       origin.Prompt,
		Provider:     origin.Provider,
		Status:       domain.GenerationStatusSuccess,
	}
	if genErr != nil {
		gen.Status = domain.GenerationStatusFailed
		gen.ErrorMessage = genErr.Error()
	} else {
		gen.Filename = result.Filename
		gen.StorageKey = result.Filename
	}

	if err := s.generations.Create(ctx, gen); err != nil {
		logger.CtxWarn(ctx, "Failed to record generation history: %v", err)
	}
}

// Templates returns the sorted list of available template names.
// Parameters:
//   - ctx: context for cancellation.
//
// Returns:
//   - *domain.TemplateList: names and count.
//   - error: non-nil if the template directory cannot be read.
func (s *MemeService) Templates(ctx context.Context) (*domain.TemplateList, error) {
	names, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return &domain.TemplateList{Templates: names, Count: len(names)}, nil
}

// History returns recent generation records, newest first.
// Parameters:
//   - ctx: context for cancellation.
//   - limit, offset: pagination; limit <= 0 falls back to 50.
//
// Returns:
//   - []domain.Generation: generation records.
//   - error: non-nil on database failure or when history is disabled.
func (s *MemeService) History(ctx context.Context, limit, offset int) ([]domain.Generation, error) {
	if s.generations == nil {
		return nil, errors.New("generation history is not enabled")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.generations.List(ctx, limit, offset)
}

// outputFilename builds a unique output key from the template name,
// a timestamp, and a short random suffix.
func outputFilename(templateName string) string {
	ts := time.Now().Format("20060102_150405")
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s.jpg", templateName, ts, short)
}
