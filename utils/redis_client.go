package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darkempire/vid/config"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// InitRedis builds the singleton Redis client from configuration. The client
// is optional: every caller treats command failures as a cache miss.
func InitRedis(cfg config.AppConfig) *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		// Optional: ping to validate; ignore error to allow fallback paths
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = redisClient.Ping(ctx).Err()
	})
	return redisClient
}

// GetRedis returns the singleton client, or nil when InitRedis was never called.
func GetRedis() *redis.Client {
	return redisClient
}
