package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/cinecheck/internal/domain/movies"
	movieDelivery "github.com/martinmanurung/cinecheck/internal/domain/movies/delivery"
	movieRepository "github.com/martinmanurung/cinecheck/internal/domain/movies/repository"
	movieUsecase "github.com/martinmanurung/cinecheck/internal/domain/movies/usecase"
	"github.com/martinmanurung/cinecheck/internal/domain/reviews"
	reviewDelivery "github.com/martinmanurung/cinecheck/internal/domain/reviews/delivery"
	reviewRepository "github.com/martinmanurung/cinecheck/internal/domain/reviews/repository"
	reviewUsecase "github.com/martinmanurung/cinecheck/internal/domain/reviews/usecase"
	"github.com/martinmanurung/cinecheck/internal/domain/users"
	"github.com/martinmanurung/cinecheck/internal/domain/users/delivery"
	"github.com/martinmanurung/cinecheck/internal/domain/users/repository"
	"github.com/martinmanurung/cinecheck/internal/domain/users/usecase"
	watchlistDelivery "github.com/martinmanurung/cinecheck/internal/domain/watchlist/delivery"
	watchlistUsecase "github.com/martinmanurung/cinecheck/internal/domain/watchlist/usecase"
	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"github.com/martinmanurung/cinecheck/internal/platform/database"
	"github.com/martinmanurung/cinecheck/internal/platform/logger"
	"github.com/martinmanurung/cinecheck/internal/platform/queue"
	"github.com/martinmanurung/cinecheck/internal/platform/storage"
	"github.com/martinmanurung/cinecheck/pkg/jwt"
	"github.com/martinmanurung/cinecheck/pkg/middleware"
	customValidator "github.com/martinmanurung/cinecheck/pkg/validator"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Setup(cfg.Log.Level)

	zlog.Info().Msg("Starting CineCheck API Server...")

	// Initialize database
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := database.Migrate(db, &movies.Movie{}, &reviews.Review{}, &users.User{}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to migrate database")
	}

	ctx := context.Background()

	// Poster uploads and rating reconciliation are optional. The API keeps
	// serving without them.
	var posterStorage movieUsecase.StorageService
	minioClient, err := storage.InitMinIO(ctx, cfg.MinIO)
	if err != nil {
		zlog.Warn().Err(err).Msg("MinIO unavailable, poster uploads disabled")
	} else {
		posterStorage = storage.NewStorageService(minioClient, cfg.MinIO.BucketPosters, cfg.MinIO.PublicBaseURL)
		zlog.Info().Msg("MinIO initialized successfully")
	}

	var ratingPublisher reviewUsecase.RatingPublisher
	redisClient, err := queue.InitRedis(ctx, cfg.Redis)
	if err != nil {
		zlog.Warn().Err(err).Msg("Redis unavailable, rating reconciliation disabled")
	} else {
		defer redisClient.Close()
		ratingPublisher = queue.NewRedisQueue(redisClient, cfg.Queue.Name)
		zlog.Info().Msg("Redis initialized successfully")
	}

	// Initialize Echo
	e := echo.New()
	e.Use(middleware.RequestID())
	e.HideBanner = true
	e.Validator = customValidator.New()

	jwtService := jwt.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTTL())

	// Initialize repositories
	userRepo := repository.NewUser(db)
	movieRepo := movieRepository.NewMovieRepository(db)
	reviewRepo := reviewRepository.NewReviewRepository(db)

	// Initialize use cases
	userUsecase := usecase.NewUsecase(userRepo, jwtService)
	movieUsecaseInstance := movieUsecase.NewMovieUsecase(movieRepo, reviewRepo, posterStorage)
	reviewUsecaseInstance := reviewUsecase.NewReviewUsecase(reviewRepo, movieRepo, ratingPublisher)
	watchlistUsecaseInstance := watchlistUsecase.NewWatchlistUsecase(userRepo, movieRepo)

	h := handlers{
		user:      delivery.NewHandler(userUsecase),
		movie:     movieDelivery.NewMovieHandler(movieUsecaseInstance),
		review:    reviewDelivery.NewReviewHandler(reviewUsecaseInstance),
		watchlist: watchlistDelivery.NewWatchlistHandler(watchlistUsecaseInstance),
	}
	setupRoutes(e, cfg.Server, h, jwtService)

	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeout) * time.Second

	// Start server in goroutine
	go func() {
		port := cfg.Server.Port
		if port == "" {
			port = "8080"
		}

		zlog.Info().Str("port", port).Msg("Starting HTTP server")
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exited successfully")
}
