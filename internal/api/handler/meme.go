package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/domain"
	"github.com/timmy/memeforge/internal/service"
)

// MemeHandler handles meme generation endpoints.
type MemeHandler struct {
	memes *service.MemeService
	ai    *service.AIService
}

// NewMemeHandler creates a new meme handler.
// Parameters:
//   - memes: generation service instance.
//   - ai: prompt-driven generation service; nil when AI is disabled.
// Returns:
//   - *MemeHandler: initialized handler.
func NewMemeHandler(memes *service.MemeService, ai *service.AIService) *MemeHandler {
	return &MemeHandler{
		memes: memes,
		ai:    ai,
	}
}

// Generate handles POST /api/v1/memes.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MemeHandler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.memes.Generate(c.Request.Context(), &req, service.GenerationOrigin{})
	if err != nil {
		status, msg := mapGenerateError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, result)
}

// aiGenerateRequest is the body of POST /api/v1/memes/ai.
type aiGenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateWithAI handles POST /api/v1/memes/ai.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MemeHandler) GenerateWithAI(c *gin.Context) {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI generation is not configured",
		})
		return
	}

	var req aiGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.ai.GenerateFromPrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		status, msg := mapGenerateError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if !result.Generated {
		// The model answered in text without calling the generation tool.
		c.JSON(http.StatusOK, gin.H{
			"success":     false,
			"ai_response": result.AIText,
			"message":     "The AI did not generate a meme. Try rephrasing your request, e.g. 'make a drake meme about testing'.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     result.Result.Message,
		"filename":    result.Result.Filename,
		"meme_url":    result.Result.MemeURL,
		"ai_response": result.AIText,
	})
}

// ListTemplates handles GET /api/v1/templates.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MemeHandler) ListTemplates(c *gin.Context) {
	list, err := h.memes.Templates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list templates: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, list)
}

// ListGenerations handles GET /api/v1/generations.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MemeHandler) ListGenerations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	generations, err := h.memes.History(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list generations: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generations": generations,
		"count":       len(generations),
	})
}

// mapGenerateError translates domain sentinels into HTTP status codes.
func mapGenerateError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrTemplateDecode):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
