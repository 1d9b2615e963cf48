package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ihimanshusharma33/video-demo/internal/config"
	"github.com/ihimanshusharma33/video-demo/internal/coordinator"
	"github.com/ihimanshusharma33/video-demo/internal/httpapi"
	"github.com/ihimanshusharma33/video-demo/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	registry := ws.NewRegistry(logger.Named("registry"))
	coord := coordinator.New(ctx, registry, cfg.Policy, logger.Named("coordinator"))

	handler := httpapi.SetupRoutes(coord, registry, cfg.AllowedOrigins, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("policy", string(cfg.Policy)))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	coord.Inbox() <- coordinator.Shutdown{}
}
