package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"lesson-server/internal/ai"
	"lesson-server/internal/assets"
	"lesson-server/internal/config"
	"lesson-server/internal/handler"
	"lesson-server/internal/job"
	"lesson-server/internal/library"
	"lesson-server/internal/logger"
	"lesson-server/internal/middleware"
	"lesson-server/internal/rasterizer"
	"lesson-server/internal/render"
)

func main() {
	// --- 1. Load configuration ---
	cfg := config.Load()

	// --- 2. Initialize logger ---
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.String("level", cfg.Logger.Level))
	appLogger.Info("Starting Lesson Server...", zap.String("env", cfg.AppEnv))

	// --- 3. Asset library ---
	assetLibrary := assets.NewLibrary(cfg.AssetsDir, appLogger)
	appLogger.Info("Asset library initialized", zap.String("root", cfg.AssetsDir))

	// --- 4. Prompts and AI client ---
	prompts := ai.NewPromptProvider(cfg.PromptsDir, appLogger)
	aiClient := ai.NewClient(cfg.AI, prompts, appLogger)
	appLogger.Info("AI client initialized", zap.String("model", cfg.AI.Model))

	// --- 5. Render engine ---
	themes, err := render.LoadThemes(cfg.ThemesFile, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load themes", zap.Error(err))
	}
	engine, err := render.NewEngine(themes, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize render engine", zap.Error(err))
	}

	// --- 6. Rasterizer ---
	raster, err := rasterizer.NewChrome(cfg.Rasterizer, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize rasterizer", zap.Error(err))
	}
	defer raster.Close()

	// --- 7. Job orchestration and library index ---
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		appLogger.Fatal("Failed to create output directory", zap.Error(err))
	}
	store := job.NewStore()
	orchestrator := job.NewOrchestrator(aiClient, engine, raster, assetLibrary, store, cfg.OutputDir, appLogger)
	index := library.NewIndex(cfg.OutputDir, appLogger)

	// --- 8. HTTP server setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.ZapLogging(appLogger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		appLogger.Info("CORS_ALLOWED_ORIGINS not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Generated slides and raw assets are served as static files.
	router.Static("/output", cfg.OutputDir)
	router.Static("/assets", cfg.AssetsDir)

	h := handler.NewHandler(orchestrator, index, store, engine, assetLibrary, appLogger)
	h.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- 9. Run and wait for shutdown signal ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down Lesson Server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	}

	appLogger.Info("Lesson Server shut down gracefully")
}
