package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/storygraph/internal/config"
	"github.com/agenthands/storygraph/internal/logging"
	"github.com/agenthands/storygraph/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg, err := config.FromEnvironment(os.Getenv)
	if err != nil {
		zap.NewExample().Sugar().Fatalw("Failed to load configuration", "error", err)
	}

	base, err := logging.New(cfg.Log)
	if err != nil {
		zap.NewExample().Sugar().Fatalw("Failed to build logger", "error", err)
	}
	defer base.Sync()
	logger := base.Sugar()

	if envErr != nil {
		logger.Debugw("No .env file found, using environment and defaults")
	}

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := server.FromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to initialize server", "error", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("Starting server", "port", cfg.Server.Port, "source", cfg.Source.Kind)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
	if err := cleanup(shutdownCtx); err != nil {
		logger.Errorw("Failed to close asset store", "error", err)
	}
}
