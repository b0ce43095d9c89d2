// Package redis provides the Redis connection and the lookup cache used to
// share remote ChEBI entry results across processes.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/biotext/bioground/internal/config"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// NewClient connects to Redis per cfg and verifies the connection with a
// ping before returning.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "failed to connect to redis")
	}
	return client, nil
}

//Personal.AI order the ending
