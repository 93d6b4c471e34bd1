package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
)

// ChatController handles HTTP requests for the chat assistant
type ChatController interface {
	// Chat answers a customer message within a session
	Chat(c *gin.Context)
	// GetHistory returns the transcript of a session
	GetHistory(c *gin.Context)
	// ClearHistory removes the transcript of a session
	ClearHistory(c *gin.Context)
	// GetStats returns chat usage counters
	GetStats(c *gin.Context)
}

type chatController struct {
	service services.ChatService
}

// NewChatController creates a new instance of ChatController
func NewChatController(service services.ChatService) ChatController {
	return &chatController{service: service}
}

// ChatRequest is the payload accepted by POST /api/chat/
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Chat godoc
// @Summary Send a message to the chat assistant
// @Description Answers a free-text customer message. A session id is minted when the request does not carry one.
// @Tags chat
// @Accept json
// @Produce json
// @Param chat body controllers.ChatRequest true "Chat payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Router /api/chat/ [post]
func (c *chatController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrCodeValidation, "Message is required"))
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	response := c.service.GenerateResponse(req.Message, req.SessionID)
	ctx.JSON(http.StatusOK, gin.H{
		"response":   response,
		"session_id": req.SessionID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetHistory godoc
// @Summary Get chat history for a session
// @Tags chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/chat/history/{session_id} [get]
func (c *chatController) GetHistory(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	history := c.service.History(sessionID)
	if history == nil {
		history = []services.ChatMessage{}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"history":    history,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// ClearHistory godoc
// @Summary Clear chat history for a session
// @Tags chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]string
// @Router /api/chat/clear/{session_id} [delete]
func (c *chatController) ClearHistory(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")
	c.service.ClearHistory(sessionID)
	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Chat history cleared successfully",
		"session_id": sessionID,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStats godoc
// @Summary Get chat usage statistics
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/chat/stats [get]
func (c *chatController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"stats":     c.service.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
