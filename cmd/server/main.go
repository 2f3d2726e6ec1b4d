package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/masterblog/masterblog/blog/application"
	"github.com/masterblog/masterblog/blog/persistence"
	"github.com/masterblog/masterblog/internal/config"
	"github.com/masterblog/masterblog/internal/middleware"
	"github.com/masterblog/masterblog/internal/rest"
)

const defaultConfigPath = "config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, reading from environment")
	}

	configPath := os.Getenv("MASTERBLOG_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store := persistence.NewJSONPostStore(cfg.Storage.File)
	postService := application.NewPostService(store)

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerMinute/60), cfg.RateLimit.Burst)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go limiter.Cleanup(10*time.Minute, 30*time.Minute, stopCleanup)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	rest.NewApi(router, postService, middleware.RateLimitMiddleware(limiter))

	if cfg.Docs.Enabled {
		router.StaticFile("/api/docs/swagger.json", cfg.Docs.SpecFile)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("data", cfg.Storage.File).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
