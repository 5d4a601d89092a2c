// Package cache keeps extracted page text in Redis between scrapes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultPrefix = "leads:page:"

// commander is the subset of the Redis client the cache needs.
type commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

var _ commander = (*redis.Client)(nil)

// Open connects to the Redis instance at redisURL and pings it.
func Open(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// TextCache stores page text with a fixed TTL. Redis failures degrade to
// cache misses.
type TextCache struct {
	client commander
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// Option configures a TextCache.
type Option func(*TextCache)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *TextCache) { c.prefix = prefix }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *TextCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewTextCache wraps a Redis client.
func NewTextCache(client *redis.Client, ttl time.Duration, opts ...Option) *TextCache {
	return newTextCache(client, ttl, opts...)
}

func newTextCache(client commander, ttl time.Duration, opts ...Option) *TextCache {
	c := &TextCache{
		client: client,
		ttl:    ttl,
		prefix: defaultPrefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached text for url.
func (c *TextCache) Get(ctx context.Context, url string) (string, bool) {
	val, err := c.client.Get(ctx, c.key(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn("page cache get failed", zap.String("url", url), zap.Error(err))
		return "", false
	}
	return val, true
}

// Set stores text for url.
func (c *TextCache) Set(ctx context.Context, url, text string) {
	if err := c.client.Set(ctx, c.key(url), text, c.ttl).Err(); err != nil {
		c.logger.Warn("page cache set failed", zap.String("url", url), zap.Error(err))
	}
}

func (c *TextCache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return c.prefix + hex.EncodeToString(sum[:])
}
