package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/mkramos/gamestore-backend/config"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// AcquireLock takes a lease on the given key. It returns false when another
// holder already owns the lease. The TTL bounds how long a crashed holder
// can block others.
func AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := client.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire lock", err, map[string]interface{}{
			"key": key,
		})
		return false, err
	}
	return acquired, nil
}

// ReleaseLock drops the lease on the given key
func ReleaseLock(ctx context.Context, key string) error {
	if err := client.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to release lock", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}
