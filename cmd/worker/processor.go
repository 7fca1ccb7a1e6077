package main

import (
	"context"
	"errors"

	"github.com/martinmanurung/cinecheck/internal/platform/queue"
	"github.com/rs/zerolog/log"
)

type RatingQueue interface {
	ConsumeRatingJob(ctx context.Context) (*queue.RatingJob, error)
	RequeueRatingJob(ctx context.Context, job queue.RatingJob) error
}

type RatingRecomputer interface {
	RecomputeRating(ctx context.Context, movieID string) error
}

// JobProcessor re-runs rating recomputes published after review writes. A later
// recompute reads the full review set, so it repairs ratings left stale by
// concurrent writers.
type JobProcessor struct {
	queue      RatingQueue
	recomputer RatingRecomputer
	maxRetries int
}

func NewJobProcessor(q RatingQueue, recomputer RatingRecomputer, maxRetries int) *JobProcessor {
	return &JobProcessor{
		queue:      q,
		recomputer: recomputer,
		maxRetries: maxRetries,
	}
}

// Start consumes jobs until ctx is cancelled
func (p *JobProcessor) Start(ctx context.Context) error {
	log.Info().Msg("Job processor started, waiting for rating jobs...")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Job processor stopped")
			return ctx.Err()
		default:
		}

		job, err := p.queue.ConsumeRatingJob(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Msg("Error consuming job")
			continue
		}
		if job == nil {
			continue
		}

		p.processJob(ctx, *job)
	}
}

func (p *JobProcessor) processJob(ctx context.Context, job queue.RatingJob) {
	logger := log.With().Str("movie_id", job.MovieID).Int("attempt", job.Attempt).Logger()

	err := p.recomputer.RecomputeRating(logger.WithContext(ctx), job.MovieID)
	if err == nil {
		logger.Debug().Msg("Rating recomputed")
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	if job.Attempt >= p.maxRetries {
		logger.Error().Err(err).Msg("Rating job dropped after max retries")
		return
	}

	logger.Warn().Err(err).Msg("Rating recompute failed, requeueing")
	if err := p.queue.RequeueRatingJob(ctx, job); err != nil {
		logger.Error().Err(err).Msg("Failed to requeue rating job")
	}
}
