// Package cache provides a Redis-backed cache for expensive read paths.
// Today that is only the trending-topics computation, which re-scans a week
// of posts on every call.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"medlink-backend/internal/config"
	"medlink-backend/internal/domain/insight"
)

const trendKey = "medlink:trending:v1"

// TrendCache stores the computed trending-topic list with a short TTL.
// Every method degrades to a miss on Redis errors; the cache is never
// allowed to fail a request.
type TrendCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTrendCache connects to Redis and verifies the connection.
func NewTrendCache(cfg config.RedisConfig, logger *zap.Logger) (*TrendCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &TrendCache{client: client, ttl: cfg.TrendTTL, logger: logger}, nil
}

// Get returns the cached topic list, or ok=false on a miss.
func (c *TrendCache) Get(ctx context.Context) ([]insight.TrendingTopic, bool) {
	payload, err := c.client.Get(ctx, trendKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("trend cache read failed", zap.Error(err))
		return nil, false
	}

	var topics []insight.TrendingTopic
	if err := json.Unmarshal(payload, &topics); err != nil {
		c.logger.Warn("trend cache payload corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, trendKey)
		return nil, false
	}
	return topics, true
}

// Set stores the topic list for the configured TTL.
func (c *TrendCache) Set(ctx context.Context, topics []insight.TrendingTopic) {
	payload, err := json.Marshal(topics)
	if err != nil {
		c.logger.Warn("trend cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, trendKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("trend cache write failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *TrendCache) Close() error {
	return c.client.Close()
}
