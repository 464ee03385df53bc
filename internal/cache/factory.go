package cache

import (
	"context"
	"fmt"
	"log/slog"

	"azurepricing/internal/config"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New builds the cache selected in config. A disabled cache is a no-op.
func New(ctx context.Context, conf *config.Config, log *slog.Logger) (Cache, error) {
	if !conf.Cache.Enabled {
		return NewNoOpCache(), nil
	}
	switch conf.Cache.Backend {
	case BackendMemory, "":
		return NewMemoryCache(conf.Cache.Cleanup), nil
	case BackendRedis:
		return NewRedisCache(ctx, RedisConfig{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
			Prefix:   conf.Redis.Prefix,
		}, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", conf.Cache.Backend)
	}
}
