package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// MenuItemRepository defines the interface for menu item persistence
type MenuItemRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*MenuItem, error)
	FindByIDs(ctx context.Context, vendorID uuid.UUID, ids []uuid.UUID) ([]MenuItem, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]MenuItem, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, item *MenuItem) error
	Save(ctx context.Context, vendorID uuid.UUID, item *MenuItem) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}
