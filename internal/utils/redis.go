package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis opens a single shared client and pings it once so a bad address
// fails at startup instead of on the first login.
func InitRedis(cfg *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
