package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"speakup.app/intake/internal/http/dto"
	"speakup.app/intake/internal/model"
)

// ReportReader serves the dashboard's view of stored reports.
type ReportReader interface {
	List(ctx context.Context) ([]model.StoredReport, error)
	Stats(ctx context.Context) (model.ReportStats, error)
}

type ReportHandler struct {
	reports ReportReader
}

func NewReportHandler(reports ReportReader) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to retrieve reports"})
		return
	}

	c.JSON(http.StatusOK, dto.FromStoredReports(reports))
}

func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to retrieve reports"})
		return
	}

	c.JSON(http.StatusOK, dto.ReportStatsResponse{
		Total:      stats.Total,
		Open:       stats.Open,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
	})
}
