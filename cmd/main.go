package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/yoonjw/maumlog/adapters/filestore"
	"github.com/yoonjw/maumlog/adapters/kakao"
	"github.com/yoonjw/maumlog/adapters/llm"
	"github.com/yoonjw/maumlog/internal/api"
	"github.com/yoonjw/maumlog/internal/auth"
	"github.com/yoonjw/maumlog/internal/config"
	"github.com/yoonjw/maumlog/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Initialize adapters
	store, err := filestore.New(cfg.DataFile, logger)
	if err != nil {
		logger.Fatal("failed to open message store", zap.Error(err))
	}

	gemini, err := llm.NewGemini(cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Fatal("failed to initialize Gemini client", zap.Error(err))
	}
	annotator := llm.NewAnnotator(gemini, logger)
	parser := kakao.NewParser(logger)

	// Initialize usecase services
	analysisService := usecase.NewAnalysisService(annotator, store, logger)
	importer := usecase.NewTranscriptImporter(parser, annotator, store, cfg.ContextWindow, logger)

	// App lock
	pins := auth.NewPinManager(cfg.PinFile, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	handlers := api.NewHandlers(analysisService, importer, store, gemini, pins, tokens, logger)
	api.InitRoutes(e, handlers)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("data_file", cfg.DataFile))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
