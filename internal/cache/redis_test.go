package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, newRedisCache(client, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "search:storage", []byte(`{"count":2}`), 5*time.Minute)

	if !mr.Exists("test:search:storage") {
		t.Fatal("value should be stored under the prefix")
	}

	val, found := c.Get(ctx, "search:storage")
	if !found {
		t.Fatal("expected value to be found")
	}
	if string(val) != `{"count":2}` {
		t.Errorf("Get() = %s", val)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Sets != 1 || stats.Backend != "redis" {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestRedisCache_TTL(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)

	if _, found := c.Get(ctx, "k"); found {
		t.Error("entry should expire with its TTL")
	}
	if c.Stats().Misses != 1 {
		t.Errorf("Misses = %d, want 1", c.Stats().Misses)
	}
}

func TestRedisCache_StatsCountsOnlyPrefix(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)
	if err := mr.Set("other:key", "keep"); err != nil {
		t.Fatal(err)
	}
	if err := mr.Set("other:key2", "keep"); err != nil {
		t.Fatal(err)
	}

	if got := c.Stats().CurrentSize; got != 2 {
		t.Errorf("CurrentSize = %d, want 2", got)
	}
	if err := c.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() = %v", err)
	}
}

func TestRedisCache_Delete(t *testing.T) {
	mr, c := setupMiniRedis(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	if mr.Exists("test:k") {
		t.Error("Delete() should remove the key")
	}
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr, c := setupMiniRedis(t)
	mr.Close()

	if _, found := c.Get(context.Background(), "k"); found {
		t.Error("Get() should miss when redis is down")
	}
	if err := c.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() should fail when redis is down")
	}
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err == nil {
		t.Error("NewRedisCache() should fail for an unreachable server")
	}
}
