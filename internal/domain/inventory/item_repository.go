package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory persistence
type ItemRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Item, error)

	// FindByIDForUpdate loads an item with a row lock for transactional
	// stock adjustments
	FindByIDForUpdate(ctx context.Context, vendorID, id uuid.UUID) (*Item, error)

	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Item, error)

	// FindLowStock lists items at or below their low-stock threshold
	FindLowStock(ctx context.Context, vendorID uuid.UUID) ([]Item, error)

	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, item *Item) error
	Save(ctx context.Context, vendorID uuid.UUID, item *Item) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}
