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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mr1hm/mycelium/internal/api"
	"github.com/mr1hm/mycelium/internal/assembler"
	"github.com/mr1hm/mycelium/internal/audit"
	"github.com/mr1hm/mycelium/internal/config"
	"github.com/mr1hm/mycelium/internal/gemini"
	"github.com/mr1hm/mycelium/internal/logging"
	"github.com/mr1hm/mycelium/internal/repository"
	"github.com/mr1hm/mycelium/internal/scenario"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	table, err := scenario.Load(cfg.Scenario.Path)
	if err != nil {
		logging.Fatalf("Failed to load scenario: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aiClient, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	if err != nil {
		// model output never reaches responses, so serve without it
		slog.Warn("gemini client unavailable, model calls disabled", "error", err)
		aiClient = gemini.Disabled()
	}
	slog.Info("model client ready", "enabled", aiClient.Enabled(), "model", aiClient.Model())

	asm := assembler.New(table, aiClient)

	var handler *api.Handler
	var recorder *audit.Recorder
	if cfg.Audit.Enabled {
		db, err := repository.NewSQLiteDB(cfg.DB.Path)
		if err != nil {
			logging.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		recorder = audit.NewRecorder(audit.Config{
			Workers:    cfg.Audit.Workers,
			BufferSize: cfg.Audit.BufferSize,
		}, db)
		recorder.Start(ctx)

		handler = api.NewHandler(asm, recorder, db, cfg.Server.MaxUploadBytes)
	} else {
		handler = api.NewHandler(asm, nil, nil, cfg.Server.MaxUploadBytes)
	}

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // must stay false with wildcard origins
	}))
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	handler.RegisterRoutes(router, api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// flush pending audit records before the database closes
	if recorder != nil {
		recorder.Stop()
	}
	cancel()

	slog.Info("shutdown complete")
}
