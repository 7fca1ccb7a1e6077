package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultQueueName = "rating:jobs"

// QueueService defines the interface for queue operations
type QueueService interface {
	PublishRatingJob(ctx context.Context, movieID string) error
	ConsumeRatingJob(ctx context.Context) (*RatingJob, error)
	RequeueRatingJob(ctx context.Context, job RatingJob) error
}

type RedisQueue struct {
	client      *redis.Client
	name        string
	pollTimeout time.Duration
}

func NewRedisQueue(client *redis.Client, name string) *RedisQueue {
	if name == "" {
		name = DefaultQueueName
	}
	return &RedisQueue{client: client, name: name, pollTimeout: 5 * time.Second}
}

// RatingJob asks the worker to recompute the aggregate rating of a movie.
type RatingJob struct {
	MovieID    string    `json:"movie_id"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func (q *RedisQueue) PublishRatingJob(ctx context.Context, movieID string) error {
	return q.push(ctx, RatingJob{MovieID: movieID, EnqueuedAt: time.Now().UTC()})
}

// RequeueRatingJob pushes job back with its attempt counter incremented.
func (q *RedisQueue) RequeueRatingJob(ctx context.Context, job RatingJob) error {
	job.Attempt++
	return q.push(ctx, job)
}

func (q *RedisQueue) push(ctx context.Context, job RatingJob) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.client.LPush(ctx, q.name, jobData).Err(); err != nil {
		return fmt.Errorf("failed to push job to queue: %w", err)
	}

	log.Debug().Str("movie_id", job.MovieID).Int("attempt", job.Attempt).Msg("Published rating job")
	return nil
}

// ConsumeRatingJob blocks for up to the poll timeout. It returns (nil, nil) when no
// job arrived so the caller can re-check its context.
func (q *RedisQueue) ConsumeRatingJob(ctx context.Context) (*RatingJob, error) {
	result, err := q.client.BRPop(ctx, q.pollTimeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to pop job from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid queue response")
	}

	var job RatingJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}
