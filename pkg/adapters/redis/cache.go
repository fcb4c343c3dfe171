package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/attlookup/pkg/domain"
	xxhash "github.com/cespare/xxhash/v2"
	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.ResultCache using Redis.
// Logical keys are hashed to keep Redis keys short; the full key is stored
// alongside the results and checked on read so a hash collision is a miss.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached lookups.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached lookups.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "attlookup:lookup:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

type entry struct {
	Key     string          `json:"key"`
	Results []domain.Result `json:"results"`
}

func (c *Cache) key(key string) string {
	return c.prefix + strconv.FormatUint(xxhash.Sum64String(key), 16)
}

// Get retrieves cached results from Redis.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.Result, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var e entry
	if err := json.Unmarshal(val, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	if e.Key != key {
		return nil, domain.ErrCacheMiss
	}
	if e.Results == nil {
		e.Results = []domain.Result{}
	}
	return e.Results, nil
}

// Set persists results to Redis.
func (c *Cache) Set(ctx context.Context, key string, results []domain.Result) error {
	data, err := json.Marshal(entry{Key: key, Results: results})
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	// Use 0 for no expiration if ttl is not set.
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
