package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/martinmanurung/cinecheck/internal/domain/movies/repository"
	reviewRepository "github.com/martinmanurung/cinecheck/internal/domain/reviews/repository"
	reviewUsecase "github.com/martinmanurung/cinecheck/internal/domain/reviews/usecase"
	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"github.com/martinmanurung/cinecheck/internal/platform/database"
	"github.com/martinmanurung/cinecheck/internal/platform/logger"
	"github.com/martinmanurung/cinecheck/internal/platform/queue"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Setup(cfg.Log.Level)

	zlog.Info().Msg("Starting CineCheck rating worker...")

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	ctx := context.Background()

	redisClient, err := queue.InitRedis(ctx, cfg.Redis)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	zlog.Info().Msg("Redis initialized successfully")

	queueService := queue.NewRedisQueue(redisClient, cfg.Queue.Name)

	// The worker only recomputes, so the review service runs without a publisher.
	reviews := reviewUsecase.NewReviewUsecase(
		reviewRepository.NewReviewRepository(db),
		repository.NewMovieRepository(db),
		nil,
	)

	processor := NewJobProcessor(queueService, reviews, cfg.Queue.MaxRetries)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		return processor.Start(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal().Err(err).Msg("Worker stopped with error")
	}

	zlog.Info().Msg("Worker exited")
}
