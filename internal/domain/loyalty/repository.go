package loyalty

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// RewardRepository defines the interface for reward persistence
type RewardRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Reward, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Reward, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, reward *Reward) error
	Save(ctx context.Context, vendorID uuid.UUID, reward *Reward) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}

// PointRepository defines the interface for the loyalty point ledger.
// Entries scope through the customer parent: every operation takes the
// vendor ID and must refuse entries whose customer belongs to another
// vendor, surfacing the miss as NOT_FOUND.
type PointRepository interface {
	// FindByCustomer lists ledger entries for one of the vendor's customers
	FindByCustomer(ctx context.Context, vendorID, customerID uuid.UUID, filter shared.Filter) ([]PointEntry, error)

	// Append records a ledger entry after validating the customer's vendor chain
	Append(ctx context.Context, vendorID uuid.UUID, entry *PointEntry) error
}
