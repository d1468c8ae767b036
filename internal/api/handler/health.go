package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles the root and health check endpoints
type HealthHandler struct {
	aiProvider string
}

// NewHealthHandler creates a new health handler.
// Parameters:
//   - aiProvider: configured AI provider name, empty when AI is disabled.
// Returns:
//   - *HealthHandler: initialized handler.
func NewHealthHandler(aiProvider string) *HealthHandler {
	return &HealthHandler{aiProvider: aiProvider}
}

// Root returns basic API information
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "memeforge",
		"message": "Meme generation API",
		"endpoints": gin.H{
			"health":           "/health",
			"generate":         "/api/v1/memes",
			"generate_with_ai": "/api/v1/memes/ai",
			"templates":        "/api/v1/templates",
			"generations":      "/api/v1/generations",
		},
	})
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"ai_configured": h.aiProvider != "",
		"ai_provider":   h.aiProvider,
	})
}
