package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryFlagCache implements FlagCache using in-process storage.
// Used standalone in development and as the fallback when Redis is disabled.
type InMemoryFlagCache struct {
	entries sync.Map // map[uuid.UUID]*flagEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// stats for monitoring
	hits   int64
	misses int64
}

type flagEntry struct {
	flags     identity.FlagSet
	expiresAt time.Time
}

func (e *flagEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryFlagCacheOption is a functional option for configuring the cache
type InMemoryFlagCacheOption func(*InMemoryFlagCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryFlagCacheOption {
	return func(c *InMemoryFlagCache) {
		c.logger = logger
	}
}

// NewInMemoryFlagCache creates a new in-memory flag cache
func NewInMemoryFlagCache(opts ...InMemoryFlagCacheOption) *InMemoryFlagCache {
	cache := &InMemoryFlagCache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a vendor's flag set from cache
func (c *InMemoryFlagCache) Get(ctx context.Context, vendorID uuid.UUID) (identity.FlagSet, error) {
	if value, ok := c.entries.Load(vendorID); ok {
		entry := value.(*flagEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.flags, nil
		}
		c.entries.Delete(vendorID)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// Set stores a vendor's flag set in cache
func (c *InMemoryFlagCache) Set(ctx context.Context, vendorID uuid.UUID, flags identity.FlagSet, ttl time.Duration) error {
	if flags == nil {
		flags = identity.FlagSet{}
	}
	if ttl == 0 {
		ttl = DefaultFlagTTL
	}

	c.entries.Store(vendorID, &flagEntry{
		flags:     flags,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a vendor's flag set from cache
func (c *InMemoryFlagCache) Delete(ctx context.Context, vendorID uuid.UUID) error {
	c.entries.Delete(vendorID)
	return nil
}

// Stats returns hit and miss counts for monitoring
func (c *InMemoryFlagCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the background cleanup goroutine
func (c *InMemoryFlagCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryFlagCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*flagEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ FlagCache = (*InMemoryFlagCache)(nil)
