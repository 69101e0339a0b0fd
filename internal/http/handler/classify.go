package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakup.app/intake/internal/http/dto"
)

// DescriptionClassifier maps a free-text description to a report category.
type DescriptionClassifier interface {
	Classify(ctx context.Context, description string) (string, error)
}

type ClassifyHandler struct {
	classifier DescriptionClassifier
}

func NewClassifyHandler(classifier DescriptionClassifier) *ClassifyHandler {
	return &ClassifyHandler{classifier: classifier}
}

func (h *ClassifyHandler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.classifier.Classify(ctx, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to classify description"})
		return
	}

	c.JSON(http.StatusOK, dto.ClassifyResponse{Category: category})
}
