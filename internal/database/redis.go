package database

import (
	"context"
	"log"
	"time"

	"github.com/Shaurya01836/Hackzen-sub006/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client for the results cache, or nil
// when no address is configured. The cache is an optimization; the
// service runs fine without it.
func ConnectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, results cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	log.Println("redis connected")
	return rdb
}
