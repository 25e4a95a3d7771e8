// Package cache keeps the dashboard summary in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	"github.com/go-redis/redis/v8"
)

const dashboardKey = "propease:dashboard"

// RedisReportCache implements outbound.ReportCache on a Redis client.
type RedisReportCache struct {
	client *redis.Client
}

var _ outbound.ReportCache = (*RedisReportCache)(nil)

// NewRedisClient accepts either a redis:// URL or a bare host:port address.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// NewRedisReportCache wraps client and checks that the server answers.
func NewRedisReportCache(ctx context.Context, client *redis.Client) (*RedisReportCache, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisReportCache{client: client}, nil
}

func (c *RedisReportCache) GetDashboard(ctx context.Context) (*domain.Dashboard, bool, error) {
	raw, err := c.client.Get(ctx, dashboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached dashboard: %w", err)
	}
	var d domain.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		// A payload from an older release is treated as a miss.
		return nil, false, nil
	}
	return &d, true, nil
}

func (c *RedisReportCache) SetDashboard(ctx context.Context, dashboard *domain.Dashboard, ttl time.Duration) error {
	raw, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return c.client.Set(ctx, dashboardKey, raw, ttl).Err()
}

func (c *RedisReportCache) InvalidateDashboard(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}

// Close releases the underlying connection pool.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
