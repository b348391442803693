package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisFlagCache implements FlagCache using Redis, shared across instances
type RedisFlagCache struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// RedisFlagCacheOption is a functional option for configuring the cache
type RedisFlagCacheOption func(*RedisFlagCache)

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisFlagCacheOption {
	return func(c *RedisFlagCache) {
		c.logger = logger
	}
}

// NewRedisFlagCache creates a cache with its own Redis client
func NewRedisFlagCache(addr, password string, db int, opts ...RedisFlagCacheOption) (*RedisFlagCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisFlagCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisFlagCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisFlagCacheWithClient(client *redis.Client, opts ...RedisFlagCacheOption) *RedisFlagCache {
	cache := &RedisFlagCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisFlagCache) cacheKey(vendorID uuid.UUID) string {
	return "vendor_flags:" + vendorID.String()
}

// Get retrieves a vendor's flag set from cache
func (c *RedisFlagCache) Get(ctx context.Context, vendorID uuid.UUID) (identity.FlagSet, error) {
	cacheKey := c.cacheKey(vendorID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss for vendor flags", zap.String("vendor_id", vendorID.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("failed to get vendor flags from cache",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get flags from cache: %w", err)
	}

	var flags identity.FlagSet
	if err := json.Unmarshal(data, &flags); err != nil {
		c.logger.Error("failed to unmarshal vendor flags",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
		// drop the corrupted entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
	}

	return flags, nil
}

// Set stores a vendor's flag set in cache
func (c *RedisFlagCache) Set(ctx context.Context, vendorID uuid.UUID, flags identity.FlagSet, ttl time.Duration) error {
	if flags == nil {
		flags = identity.FlagSet{}
	}
	if ttl == 0 {
		ttl = DefaultFlagTTL
	}

	data, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(vendorID), data, ttl).Err(); err != nil {
		c.logger.Error("failed to set vendor flags in cache",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set flags in cache: %w", err)
	}

	return nil
}

// Delete removes a vendor's flag set from cache
func (c *RedisFlagCache) Delete(ctx context.Context, vendorID uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(vendorID)).Err(); err != nil {
		c.logger.Error("failed to delete vendor flags from cache",
			zap.String("vendor_id", vendorID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to delete flags from cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisFlagCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ FlagCache = (*RedisFlagCache)(nil)
