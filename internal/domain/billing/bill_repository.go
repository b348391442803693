package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindBetween lists bills created inside [from, to), newest first
	FindBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]Bill, error)

	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, bill *Bill) error
	Save(ctx context.Context, vendorID uuid.UUID, bill *Bill) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}
