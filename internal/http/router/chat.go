package router

import (
	"github.com/gin-gonic/gin"

	"speakup.app/intake/internal/http/handler"
)

func ChatRouter(rg *gin.RouterGroup, h *handler.ChatHandler) {
	rg.GET("", h.Get)
	rg.POST("/messages", h.Send)
	rg.POST("/retry", h.Retry)
	rg.DELETE("", h.Delete)
}
