package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"

	"campusride/internal/config"
)

// NewRedisClient creates a new Redis client, instrumented for New Relic when enabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, instrument bool) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if instrument {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
