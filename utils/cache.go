// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"almadina/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects to Redis when an address is configured. A nil client
// and nil error mean Redis is disabled.
func InitRedis() (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
