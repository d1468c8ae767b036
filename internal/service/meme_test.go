package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/render"
	"github.com/timmy/memeforge/internal/storage"
	"github.com/timmy/memeforge/internal/template"
)

func writeTemplate(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 100, G: 100, B: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode template: %v", err)
	}
}

func newTestService(t *testing.T, maxDimension int) (*MemeService, *storage.LocalStorage, string) {
	t.Helper()

	templatesDir := t.TempDir()
	writeTemplate(t, templatesDir, "drake.png", 400, 300)

	store, err := template.NewFSStore(templatesDir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	memesDir := t.TempDir()
	local, err := storage.NewLocalStorage(&storage.LocalConfig{
		Dir:       memesDir,
		PublicURL: "http://localhost:8080/static/memes",
	})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	defaults := StyleDefaults{
		FontSize:    domain.DefaultFontSize,
		FontColor:   domain.DefaultFontColor,
		StrokeColor: domain.DefaultStrokeColor,
		StrokeWidth: domain.DefaultStrokeWidth,
	}

	svc := NewMemeService(store, local, render.New(nil), nil, defaults, maxDimension)
	return svc, local, templatesDir
}

func TestGenerate(t *testing.T) {
	svc, local, _ := newTestService(t, 0)
	ctx := context.Background()

	req := &domain.GenerateRequest{
		TemplateName: "drake",
		TopText:      "writing tests",
		BottomText:   "shipping anyway",
	}
	result, err := svc.Generate(ctx, req, GenerationOrigin{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if !strings.HasPrefix(result.Filename, "drake_") || !strings.HasSuffix(result.Filename, ".jpg") {
		t.Errorf("Filename = %q, want drake_*.jpg", result.Filename)
	}
	if result.MemeURL != "http://localhost:8080/static/memes/"+result.Filename {
		t.Errorf("MemeURL = %q, want public URL with filename", result.MemeURL)
	}

	// Output must exist in storage and decode as a JPEG.
	rc, err := local.Download(ctx, result.Filename)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer rc.Close()
	out, err := jpeg.Decode(rc)
	if err != nil {
		t.Fatalf("output is not a valid JPEG: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("output dimensions = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	req := &domain.GenerateRequest{
		TemplateName: "drake",
		TopText:      "hello",
	}
	if _, err := svc.Generate(context.Background(), req, GenerationOrigin{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if req.FontSize != domain.DefaultFontSize {
		t.Errorf("FontSize = %d, want default %d", req.FontSize, domain.DefaultFontSize)
	}
	if req.FontColor != domain.DefaultFontColor {
		t.Errorf("FontColor = %q, want default %q", req.FontColor, domain.DefaultFontColor)
	}
	if req.StrokeWidth == nil || *req.StrokeWidth != domain.DefaultStrokeWidth {
		t.Errorf("StrokeWidth = %v, want default %d", req.StrokeWidth, domain.DefaultStrokeWidth)
	}
}

func TestGenerateTemplateNotFound(t *testing.T) {
	svc, local, _ := newTestService(t, 0)
	ctx := context.Background()

	req := &domain.GenerateRequest{
		TemplateName: "nope",
		TopText:      "hello",
	}
	_, err := svc.Generate(ctx, req, GenerationOrigin{})
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Fatalf("Generate() error = %v, want ErrTemplateNotFound", err)
	}

	// A failed generation must leave nothing behind in storage.
	entries, readErr := os.ReadDir(local.Dir())
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("storage contains %d files after failure, want 0", len(entries))
	}
}

func TestGenerateRejectsInvalidStyle(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *domain.GenerateRequest
	}{
		{
			name: "bad font color",
			req:  &domain.GenerateRequest{TemplateName: "drake", TopText: "hi", FontColor: "chartreuse-ish"},
		},
		{
			name: "font size out of range",
			req:  &domain.GenerateRequest{TemplateName: "drake", TopText: "hi", FontSize: 500},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, tt.req, GenerationOrigin{})
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("Generate() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGenerateDownscalesOversizedTemplate(t *testing.T) {
	svc, local, templatesDir := newTestService(t, 200)
	writeTemplate(t, templatesDir, "huge.png", 400, 300)
	ctx := context.Background()

	req := &domain.GenerateRequest{
		TemplateName: "huge",
		TopText:      "big",
	}
	result, err := svc.Generate(ctx, req, GenerationOrigin{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	rc, err := local.Download(ctx, result.Filename)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer rc.Close()
	out, err := jpeg.Decode(rc)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := out.Bounds()
	if b.Dx() > 200 || b.Dy() > 200 {
		t.Errorf("output dimensions = %dx%d, want both <= 200", b.Dx(), b.Dy())
	}
}

func TestTemplatesListing(t *testing.T) {
	svc, _, templatesDir := newTestService(t, 0)
	writeTemplate(t, templatesDir, "doge.png", 100, 100)

	list, err := svc.Templates(context.Background())
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	if list.Count != 2 {
		t.Errorf("Count = %d, want 2", list.Count)
	}
	want := []string{"doge", "drake"}
	for i, name := range want {
		if list.Templates[i] != name {
			t.Errorf("Templates[%d] = %q, want %q", i, list.Templates[i], name)
		}
	}
}

func TestHistoryDisabled(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	if _, err := svc.History(context.Background(), 10, 0); err == nil {
		t.Error("History() error = nil, want disabled error")
	}
}
