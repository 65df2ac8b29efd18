package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/application/services"
	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/ports"
	"github.com/quillblog/quill/internal/infrastructure/db"
	"github.com/quillblog/quill/internal/infrastructure/gemini"
	"github.com/quillblog/quill/internal/infrastructure/health"
	"github.com/quillblog/quill/internal/infrastructure/httpserver"
	"github.com/quillblog/quill/internal/infrastructure/redis"
	"github.com/quillblog/quill/internal/infrastructure/repositories"
	"github.com/quillblog/quill/internal/infrastructure/youtube"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Quill blog server...")

	// Initialize database
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Initialize repositories; the popular listing reads through Redis.
	redisCache := redis.NewCache(redisClient, "quill")
	basePostRepo := repositories.NewPostRepository(database, logger)
	postRepo := repositories.NewCachingPostRepository(basePostRepo, redisCache, logger)
	commentRepo := repositories.NewCommentRepository(database, logger)
	rateLimitStore := repositories.NewMemoryRateLimitStore()

	// Wire services
	rateLimiterService := services.NewRateLimiterService(rateLimitStore, &cfg.RateLimit, logger)
	postService := services.NewPostService(postRepo, commentRepo, cfg.Site.Author, logger)

	// External providers are optional: without keys the generation endpoints
	// report themselves unconfigured instead of blocking startup.
	var generator ports.TextGenerator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), &cfg.Gemini, logger)
		if err != nil {
			logger.Fatal("Failed to initialize text generation client:", err)
		}
		defer geminiClient.Close()
		generator = geminiClient
	} else {
		logger.Warn("GEMINI_API_KEY not set; content generation is disabled")
	}

	var videoProvider ports.VideoProvider
	if cfg.YouTube.APIKey != "" {
		youtubeClient, err := youtube.NewClient(context.Background(), &cfg.YouTube, logger)
		if err != nil {
			logger.Fatal("Failed to initialize video metadata client:", err)
		}
		videoProvider = youtubeClient
	} else {
		logger.Warn("YOUTUBE_API_KEY not set; video conversion is disabled")
	}

	generationService := services.NewGenerationService(generator, videoProvider, postService, postRepo, rateLimiterService, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		PostService:        postService,
		GenerationService:  generationService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, &cfg.Admin, &cfg.Cron, locale.Parse(cfg.Site.DefaultLocale), logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
