package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakup.app/intake/common/llm"
	"speakup.app/intake/internal/http/dto"
)

// Responder answers a free-form question given the chat history.
type Responder interface {
	Reply(ctx context.Context, message string, history []llm.Message) (string, error)
}

type AssistantHandler struct {
	responder Responder
}

func NewAssistantHandler(responder Responder) *AssistantHandler {
	return &AssistantHandler{responder: responder}
}

func (h *AssistantHandler) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.responder.Reply(ctx, req.Message, history)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get a response from the assistant."})
		return
	}

	c.JSON(http.StatusOK, dto.AssistantResponse{Response: reply})
}
