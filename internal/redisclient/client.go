package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retention-analytics/internal/analytics"

	"github.com/go-redis/redis/v8"
)

// Client caches computed reports in Redis. Keys are derived from an
// explicit hash of the input snapshot plus the analytics parameters, so a
// cached entry can never outlive the data it was computed from.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis-backed report cache
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func reportKey(snapshotHash string) string {
	return fmt.Sprintf("report:%s", snapshotHash)
}

// GetReport returns the cached report for a snapshot hash, or (nil, nil)
// on a cache miss.
func (c *Client) GetReport(ctx context.Context, snapshotHash string) (*analytics.Report, error) {
	raw, err := c.rdb.Get(ctx, reportKey(snapshotHash)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("report cache read failed: %w", err)
	}

	var report analytics.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// SetReport stores a computed report under its snapshot hash
func (c *Client) SetReport(ctx context.Context, snapshotHash string, report *analytics.Report) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := c.rdb.Set(ctx, reportKey(snapshotHash), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("report cache write failed: %w", err)
	}
	return nil
}

// InvalidateReport drops the cached report for a snapshot hash
func (c *Client) InvalidateReport(ctx context.Context, snapshotHash string) error {
	return c.rdb.Del(ctx, reportKey(snapshotHash)).Err()
}
