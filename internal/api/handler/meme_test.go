package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/prompts"
	"github.com/timmy/memeforge/internal/render"
	"github.com/timmy/memeforge/internal/service"
	"github.com/timmy/memeforge/internal/storage"
	"github.com/timmy/memeforge/internal/template"
)

type stubProvider struct {
	result *service.ToolCallResult
	err    error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) GenerateWithTools(ctx context.Context, prompt string, tools []service.Tool) (*service.ToolCallResult, error) {
	return p.result, p.err
}

func newTestMemeService(t *testing.T) *service.MemeService {
	t.Helper()

	templatesDir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: 80, G: 80, B: 80, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(templatesDir, "drake.png"))
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode template: %v", err)
	}
	f.Close()

	store, err := template.NewFSStore(templatesDir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	local, err := storage.NewLocalStorage(&storage.LocalConfig{
		Dir:       t.TempDir(),
		PublicURL: "http://localhost:8080/static/memes",
	})
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	defaults := service.StyleDefaults{
		FontSize:    domain.DefaultFontSize,
		FontColor:   domain.DefaultFontColor,
		StrokeColor: domain.DefaultStrokeColor,
		StrokeWidth: domain.DefaultStrokeWidth,
	}
	return service.NewMemeService(store, local, render.New(nil), nil, defaults, 0)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestGenerateEndpoint(t *testing.T) {
	h := NewMemeHandler(newTestMemeService(t), nil)

	w := performJSON(t, h.Generate, http.MethodPost, "/api/v1/memes", map[string]interface{}{
		"template_name": "drake",
		"top_text":      "hello",
		"bottom_text":   "world",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["meme_url"] == "" {
		t.Error("meme_url is empty")
	}
}

func TestGenerateEndpointTemplateNotFound(t *testing.T) {
	h := NewMemeHandler(newTestMemeService(t), nil)

	w := performJSON(t, h.Generate, http.MethodPost, "/api/v1/memes", map[string]interface{}{
		"template_name": "missing",
		"top_text":      "hello",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGenerateEndpointInvalidBody(t *testing.T) {
	h := NewMemeHandler(newTestMemeService(t), nil)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing top_text",
			body: map[string]interface{}{"template_name": "drake"},
		},
		{
			name: "font_size out of range",
			body: map[string]interface{}{"template_name": "drake", "top_text": "hi", "font_size": 500},
		},
		{
			name: "stroke_width out of range",
			body: map[string]interface{}{"template_name": "drake", "top_text": "hi", "stroke_width": 99},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, h.Generate, http.MethodPost, "/api/v1/memes", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGenerateWithAIUnconfigured(t *testing.T) {
	h := NewMemeHandler(newTestMemeService(t), nil)

	w := performJSON(t, h.GenerateWithAI, http.MethodPost, "/api/v1/memes/ai", map[string]interface{}{
		"prompt": "make a meme",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGenerateWithAIToolCall(t *testing.T) {
	memes := newTestMemeService(t)
	ai := service.NewAIService(&stubProvider{
		result: &service.ToolCallResult{
			Text: "Done!",
			Calls: []service.ToolCall{{
				Name: prompts.ToolGenerateMeme,
				Args: map[string]interface{}{
					"template_name": "drake",
					"top_text":      "asked the model",
				},
			}},
		},
	}, memes)
	h := NewMemeHandler(memes, ai)

	w := performJSON(t, h.GenerateWithAI, http.MethodPost, "/api/v1/memes/ai", map[string]interface{}{
		"prompt": "make a drake meme",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["ai_response"] != "Done!" {
		t.Errorf("ai_response = %v, want model text", body["ai_response"])
	}
}

func TestGenerateWithAINoToolCall(t *testing.T) {
	memes := newTestMemeService(t)
	ai := service.NewAIService(&stubProvider{
		result: &service.ToolCallResult{Text: "I'd rather not."},
	}, memes)
	h := NewMemeHandler(memes, ai)

	w := performJSON(t, h.GenerateWithAI, http.MethodPost, "/api/v1/memes/ai", map[string]interface{}{
		"prompt": "do nothing",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["ai_response"] != "I'd rather not." {
		t.Errorf("ai_response = %v, want model text", body["ai_response"])
	}
}

func TestListTemplatesEndpoint(t *testing.T) {
	h := NewMemeHandler(newTestMemeService(t), nil)

	w := performJSON(t, h.ListTemplates, http.MethodGet, "/api/v1/templates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list domain.TemplateList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if list.Count != 1 || len(list.Templates) != 1 || list.Templates[0] != "drake" {
		t.Errorf("list = %+v, want single drake entry", list)
	}
}
