package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMenuItemRepository implements MenuItemRepository using GORM
type GormMenuItemRepository struct {
	scopedRepo[catalog.MenuItem, *catalog.MenuItem]
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{
		scopedRepo: newScopedRepo[catalog.MenuItem](db,
			"created_at",
			[]string{"created_at", "name", "category", "price"},
			[]string{"name", "category"},
		),
	}
}

// FindByID finds a menu item by ID within the vendor's scope
func (r *GormMenuItemRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*catalog.MenuItem, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindByIDs finds multiple menu items by their IDs within the vendor's
// scope. IDs outside the scope are simply absent from the result.
func (r *GormMenuItemRepository) FindByIDs(ctx context.Context, vendorID uuid.UUID, ids []uuid.UUID) ([]catalog.MenuItem, error) {
	if len(ids) == 0 {
		return []catalog.MenuItem{}, nil
	}
	var items []catalog.MenuItem
	if err := r.conn(ctx).
		Where("vendor_id = ? AND id IN ?", vendorID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll lists the vendor's menu items matching the filter
func (r *GormMenuItemRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]catalog.MenuItem, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the item and persists it
func (r *GormMenuItemRepository) Create(ctx context.Context, vendorID uuid.UUID, item *catalog.MenuItem) error {
	return r.create(ctx, vendorID, item)
}

// Save persists changes to an existing item after verifying scope
func (r *GormMenuItemRepository) Save(ctx context.Context, vendorID uuid.UUID, item *catalog.MenuItem) error {
	return r.save(ctx, vendorID, item)
}

// Delete removes a menu item within the vendor's scope
func (r *GormMenuItemRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ catalog.MenuItemRepository = (*GormMenuItemRepository)(nil)
