package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ItemRepository using GORM
type GormInventoryRepository struct {
	scopedRepo[inventory.Item, *inventory.Item]
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{
		scopedRepo: newScopedRepo[inventory.Item](db,
			"created_at",
			[]string{"created_at", "name", "stock"},
			[]string{"name"},
		),
	}
}

// FindByID finds an inventory item by ID within the vendor's scope
func (r *GormInventoryRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*inventory.Item, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindByIDForUpdate loads an item with a row lock for transactional stock
// adjustments. Must be called inside a transaction.
func (r *GormInventoryRepository) FindByIDForUpdate(ctx context.Context, vendorID, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("vendor_id = ? AND id = ?", vendorID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll lists the vendor's inventory items matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	return r.findAll(ctx, vendorID, filter)
}

// FindLowStock lists items at or below their low-stock threshold
func (r *GormInventoryRepository) FindLowStock(ctx context.Context, vendorID uuid.UUID) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.conn(ctx).
		Where("vendor_id = ? AND low_stock_threshold > 0 AND stock <= low_stock_threshold", vendorID).
		Order("stock ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts the vendor's inventory items matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the item and persists it
func (r *GormInventoryRepository) Create(ctx context.Context, vendorID uuid.UUID, item *inventory.Item) error {
	return r.create(ctx, vendorID, item)
}

// Save persists changes to an existing item after verifying scope
func (r *GormInventoryRepository) Save(ctx context.Context, vendorID uuid.UUID, item *inventory.Item) error {
	return r.save(ctx, vendorID, item)
}

// Delete removes an inventory item within the vendor's scope
func (r *GormInventoryRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ inventory.ItemRepository = (*GormInventoryRepository)(nil)
