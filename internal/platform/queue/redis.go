package queue

import (
	"context"
	"fmt"

	"github.com/martinmanurung/cinecheck/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis and verifies the connection with a ping.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error verifying Redis connection: %w", err)
	}

	return client, nil
}
