// Package cache provides caching for per-vendor feature flag sets.
//
// Flag sets are read on nearly every request by the gating middleware, so
// they are cached with a short TTL and invalidated whenever an admin or the
// vendor changes a flag.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/identity"
)

// DefaultFlagTTL is the cache lifetime for a vendor's flag set
const DefaultFlagTTL = 60 * time.Second

// FlagCache caches the feature flag set of a vendor profile.
// A nil set with a nil error means a cache miss.
type FlagCache interface {
	Get(ctx context.Context, vendorID uuid.UUID) (identity.FlagSet, error)
	Set(ctx context.Context, vendorID uuid.UUID, flags identity.FlagSet, ttl time.Duration) error
	Delete(ctx context.Context, vendorID uuid.UUID) error
	Close() error
}
