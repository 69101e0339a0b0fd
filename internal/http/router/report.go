package router

import (
	"github.com/gin-gonic/gin"

	"speakup.app/intake/internal/http/handler"
)

func ReportRouter(rg *gin.RouterGroup, h *handler.ReportHandler) {
	rg.GET("", h.List)
	rg.GET("/stats", h.Stats)
}
