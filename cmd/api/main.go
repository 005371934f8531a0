package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/chatbox-platform/chatbox/internal/api"
	"github.com/chatbox-platform/chatbox/internal/chat"
	"github.com/chatbox-platform/chatbox/internal/config"
	"github.com/chatbox-platform/chatbox/internal/inference"
	"github.com/chatbox-platform/chatbox/internal/middleware"
	iredis "github.com/chatbox-platform/chatbox/internal/redis"
	"github.com/chatbox-platform/chatbox/internal/server"
	"github.com/chatbox-platform/chatbox/internal/transcript"
	"github.com/chatbox-platform/chatbox/internal/visits"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("validating config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Optional Redis (chat rate limiter only)
	var chatRateLimiter func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		redisClient, err := iredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Error("connecting to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		rl := middleware.NewRateLimiter(redisClient, cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
		chatRateLimiter = rl.Middleware
	}

	// Inference provider
	completer := inference.NewClient(cfg.Inference)

	// Chat
	transcripts := transcript.NewStore(cfg.Chat.MaxHistory)
	visitTracker := visits.NewTracker()
	chatSvc := chat.NewService(transcripts, visitTracker, completer)
	chatHandler := chat.NewHandler(chatSvc, cfg.Inference.Model)
	visitHandler := visits.NewHandler(visitTracker)

	// Router
	router := api.NewRouter(api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		ChatRateLimiter:    chatRateLimiter,
	}, api.HandlerSet{
		NewSession: chatHandler.NewSession,
		Chat:       chatHandler.Chat,
		History:    chatHandler.History,
		Health:     chatHandler.Health,
		TrackVisit: visitHandler.TrackVisit,
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
