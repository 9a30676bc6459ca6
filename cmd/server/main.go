package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cover-builder-backend/internal/config"
	"cover-builder-backend/internal/database"
	"cover-builder-backend/internal/gemini"
	"cover-builder-backend/internal/handlers"
	"cover-builder-backend/internal/logging"
	"cover-builder-backend/internal/openai"
	"cover-builder-backend/internal/services"
	"cover-builder-backend/internal/storage"
	"cover-builder-backend/internal/supabase"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	logger.WithField("env", cfg.Environment).Info("Starting cover builder API")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db, logger).Run(ctx); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}

	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAITextModel)

	var (
		textGenerator services.TextGenerator = openaiClient
		textModel                            = cfg.OpenAITextModel
	)
	if cfg.TextProvider == config.TextProviderGemini {
		geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel)
		if err != nil {
			logger.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGenerator = geminiClient
		textModel = cfg.GeminiTextModel
	}

	store, staticDir, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	projectService := services.NewProjectService(db, store, logger)
	briefService := services.NewBriefService(db, textGenerator, textModel, logger)
	imageService := services.NewImageService(db, openaiClient, store, services.ImageDefaults{
		Model: cfg.OpenAIImageModel,
		Size:  cfg.OpenAIImageSize,
	}, logger)

	defaultMode := services.ModeFromFlag(cfg.UseOpenAI)
	logger.WithFields(logrus.Fields{
		"default_mode":  defaultMode.String(),
		"text_provider": cfg.TextProvider,
		"storage":       cfg.StorageBackend,
	}).Info("Generation configured")

	router := gin.New()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.ModeHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(logging.GinLogger(logger))
	router.Use(gin.Recovery())

	handlers.RegisterRoutes(
		router,
		cfg,
		handlers.NewProjectsHandler(projectService),
		handlers.NewCoverHandler(briefService, imageService, defaultMode),
		staticDir,
	)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logger.Infof("Server listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Generation calls can run for minutes; give in-flight ones a chance to land.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// newStore picks the image store. The second value is the directory served
// under /static, empty when images live in a bucket.
func newStore(cfg *config.Config) (storage.Store, string, error) {
	if cfg.StorageBackend == config.StorageBackendSupabase {
		client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, "", err
		}
		return supabase.NewStore(client, cfg.SupabaseStorageBucket), "", nil
	}

	local, err := storage.NewLocalStore(cfg.StorageDir, storage.StaticPrefix)
	if err != nil {
		return nil, "", err
	}
	return local, local.Root(), nil
}
