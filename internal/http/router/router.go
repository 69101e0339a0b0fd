package router

import (
	"github.com/gin-gonic/gin"

	"speakup.app/intake/internal/conversation"
	"speakup.app/intake/internal/http/handler"
	"speakup.app/intake/internal/http/middleware"
)

type Config struct {
	DashboardURL string
	AuthSecret   string
	IsProduction bool
}

// Dependencies carries the services the HTTP layer exposes.
type Dependencies struct {
	Conversations *conversation.Manager
	Classifier    handler.DescriptionClassifier
	Responder     handler.Responder
	Reports       handler.ReportReader
}

func SetupRoutes(router *gin.Engine, deps Dependencies, cfg Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORS(cfg.DashboardURL))
	v1.Use(middleware.Identity(cfg.AuthSecret))
	{
		chatHandler := handler.NewChatHandler(deps.Conversations, cfg.IsProduction)
		ChatRouter(v1.Group("/chat"), chatHandler)

		classifyHandler := handler.NewClassifyHandler(deps.Classifier)
		v1.POST("/classify", classifyHandler.Classify)

		assistantHandler := handler.NewAssistantHandler(deps.Responder)
		v1.POST("/assistant", assistantHandler.Ask)

		reportHandler := handler.NewReportHandler(deps.Reports)
		ReportRouter(v1.Group("/reports"), reportHandler)
	}
}
