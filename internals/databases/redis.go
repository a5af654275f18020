package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/configs"
)

// ConnectRedis mengembalikan (nil, nil) kalau REDIS_URL kosong; cache katalog lalu dimatikan.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	url := configs.GetEnv("REDIS_URL")
	if url == "" {
		zap.S().Info("ℹ️ REDIS_URL kosong, cache katalog nonaktif")
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = configs.GetEnvInt("REDIS_POOL_SIZE", 10)
	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	zap.S().Info("✅ Redis connected.")
	return client, nil
}
