package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devmatch/backend/internal/api"
	"github.com/devmatch/backend/internal/config"
	"github.com/devmatch/backend/internal/logging"
	"github.com/devmatch/backend/internal/ratelimit"
	"github.com/devmatch/backend/internal/repository/postgres"
	"github.com/devmatch/backend/internal/service"
	"github.com/devmatch/backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(cfg.Environment)

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize repositories and seed the technology catalog
	repos := postgres.NewRepositories(db)
	if err := postgres.SeedTechnologies(context.Background(), repos.Technology); err != nil {
		log.Fatal().Err(err).Msg("failed to seed technologies")
	}

	// Initialize Redis-backed rate limiting
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	limiter := ratelimit.NewLimiter(ratelimit.NewRedisStore(redisClient), cfg.LikesPerMinute)

	// Initialize WebSocket hub
	hub := websocket.NewHub(repos.Match, repos.Message)

	// Initialize services
	services := service.NewServices(repos, limiter, cfg)

	// Initialize router
	router := api.NewRouter(services, hub)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	redisClient.Close()

	log.Info().Msg("server stopped")
}
