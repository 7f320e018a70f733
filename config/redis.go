package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// NewRedis connects to Redis for rate limiting. Returns nil when REDIS_URL
// is not configured or the connection fails; callers treat a nil client as
// "rate limiting disabled" instead of refusing to start.
func NewRedis() *redis.Client {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, rate limiting disabled")
		return nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - rate limiting disabled", err)
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - rate limiting disabled", err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
