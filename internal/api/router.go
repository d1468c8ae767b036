package api

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/api/handler"
	"github.com/timmy/memeforge/internal/api/middleware"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/service"
)

// RouterConfig carries the HTTP-level settings for SetupRouter.
type RouterConfig struct {
	Mode      string
	CORS      middleware.CORSConfig
	StaticDir string // local memes directory served at /static/memes; empty disables
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	memes *service.MemeService,
	ai *service.AIService,
	log *logger.Logger,
	cfg RouterConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	// Create handlers
	aiProvider := ""
	if ai != nil {
		aiProvider = ai.Provider()
	}
	healthHandler := handler.NewHealthHandler(aiProvider)
	memeHandler := handler.NewMemeHandler(memes, ai)

	// Root and health check
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	// Rendered memes from local storage
	if cfg.StaticDir != "" {
		r.Static("/static/memes", cfg.StaticDir)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Generation
		v1.POST("/memes", memeHandler.Generate)
		v1.POST("/memes/ai", memeHandler.GenerateWithAI)

		// Templates
		v1.GET("/templates", memeHandler.ListTemplates)

		// History
		v1.GET("/generations", memeHandler.ListGenerations)
	}

	return r
}
