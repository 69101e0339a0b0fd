package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"speakup.app/intake/common/id"
	"speakup.app/intake/common/llm"
	"speakup.app/intake/common/logger"
	"speakup.app/intake/common/otel"
	"speakup.app/intake/core/config"
	"speakup.app/intake/internal/assistant"
	"speakup.app/intake/internal/classifier"
	"speakup.app/intake/internal/conversation"
	"speakup.app/intake/internal/http/middleware"
	httprouter "speakup.app/intake/internal/http/router"
	"speakup.app/intake/internal/reportapi"
	"speakup.app/intake/internal/reports"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "intake starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	llmClient, err := llm.New(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected")

	reportClient := reportapi.NewClient(cfg.ReportAPI)
	categoryGateway := classifier.New(llmClient, cfg.LLM.MaxTokens)
	reportService := reports.NewService(reportClient, reports.NewRedisCache(redisClient), cfg.Redis.CacheTTL)
	assistantService := assistant.NewService(llmClient, cfg.LLM.MaxTokens, cfg.LLM.Temperature)

	conversations := conversation.NewManager(categoryGateway, reportClient, conversation.Config{
		TypingDelay: cfg.Chat.TypingDelay,
		ResetDelay:  cfg.Chat.ResetDelay,
	}, cfg.Chat.IdleTTL)

	managerCtx, stopManager := context.WithCancel(ctx)
	go conversations.Run(managerCtx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, httprouter.Dependencies{
		Conversations: conversations,
		Classifier:    categoryGateway,
		Responder:     assistantService,
		Reports:       reportService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	stopManager()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, deps httprouter.Dependencies) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, deps, httprouter.Config{
		DashboardURL: cfg.DashboardURL,
		AuthSecret:   cfg.Auth.JWTSecret,
		IsProduction: cfg.IsProduction(),
	})

	return router
}

const banner = `
███████╗██████╗ ███████╗ █████╗ ██╗  ██╗██╗   ██╗██████╗
██╔════╝██╔══██╗██╔════╝██╔══██╗██║ ██╔╝██║   ██║██╔══██╗
███████╗██████╔╝█████╗  ███████║█████╔╝ ██║   ██║██████╔╝
╚════██║██╔═══╝ ██╔══╝  ██╔══██║██╔═██╗ ██║   ██║██╔═══╝
███████║██║     ███████╗██║  ██║██║  ██╗╚██████╔╝██║
╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝
`
