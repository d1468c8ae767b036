package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/memeforge/internal/api"
	"github.com/timmy/memeforge/internal/api/middleware"
	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/render"
	"github.com/timmy/memeforge/internal/repository"
	"github.com/timmy/memeforge/internal/service"
	"github.com/timmy/memeforge/internal/storage"
	"github.com/timmy/memeforge/internal/template"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	generationRepo := repository.NewGenerationRepository(db)

	// Initialize template store
	templateStore, err := template.NewFSStore(cfg.Templates.Dir)
	if err != nil {
		logger.Fatal("Failed to initialize template store: %v", err)
	}

	// Initialize storage (local directory or S3-compatible)
	objectStorage, err := storage.NewStorage(&storage.Config{
		Type:      cfg.Storage.Type,
		Dir:       cfg.Storage.Dir,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}

	ctx := context.Background()
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		logger.Fatal("Failed to ensure storage bucket: %v", err)
	}

	// Initialize services
	memeService := service.NewMemeService(
		templateStore,
		objectStorage,
		render.New(cfg.Render.FontPaths),
		generationRepo,
		service.StyleDefaults{
			FontSize:    cfg.Render.FontSize,
			FontColor:   cfg.Render.FontColor,
			StrokeColor: cfg.Render.StrokeColor,
			StrokeWidth: cfg.Render.StrokeWidth,
		},
		cfg.Render.MaxDimension,
	)

	aiService := buildAIService(ctx, cfg, memeService)

	// Static file serving only applies to the local storage backend
	staticDir := ""
	if local, ok := objectStorage.(*storage.LocalStorage); ok {
		staticDir = local.Dir()
	}

	// Setup router
	router := api.SetupRouter(memeService, aiService, appLogger, api.RouterConfig{
		Mode: cfg.Server.Mode,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
		StaticDir: staticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// buildAIService wires the configured tool-calling provider through the
// registry. Returns nil when AI is disabled or no API key is available;
// the API then reports 503 on the AI endpoint instead of failing startup.
func buildAIService(ctx context.Context, cfg *config.Config, memes *service.MemeService) *service.AIService {
	if !cfg.AI.Enabled {
		logger.Info("AI generation disabled by configuration")
		return nil
	}
	if cfg.AI.APIKey == "" {
		logger.Warn("AI generation disabled: no API key configured for provider %s", cfg.AI.Provider)
		return nil
	}

	registry := service.NewProviderRegistry()

	if err := registry.Register(service.NewOpenAIProvider(&service.OpenAIConfig{
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
	})); err != nil {
		logger.Fatal("Failed to register openai provider: %v", err)
	}

	gemini, err := service.NewGeminiProvider(ctx, &service.GeminiConfig{
		Model:  cfg.AI.Model,
		APIKey: cfg.AI.APIKey,
	})
	if err != nil {
		logger.Warn("Gemini provider unavailable: %v", err)
	} else if err := registry.Register(gemini); err != nil {
		logger.Fatal("Failed to register gemini provider: %v", err)
	}

	if err := registry.Register(service.NewAnthropicProvider(&service.AnthropicConfig{
		Model:  cfg.AI.Model,
		APIKey: cfg.AI.APIKey,
	})); err != nil {
		logger.Fatal("Failed to register anthropic provider: %v", err)
	}

	provider, err := registry.Get(cfg.AI.Provider)
	if err != nil {
		logger.Fatal("Unknown AI provider %q (available: %v)", cfg.AI.Provider, registry.List())
	}

	logger.Info("AI generation enabled: provider=%s, model=%s", provider.Name(), cfg.AI.Model)
	return service.NewAIService(provider, memes)
}
