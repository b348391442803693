package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/loyalty"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRewardRepository implements RewardRepository using GORM
type GormRewardRepository struct {
	scopedRepo[loyalty.Reward, *loyalty.Reward]
}

// NewGormRewardRepository creates a new GormRewardRepository
func NewGormRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{
		scopedRepo: newScopedRepo[loyalty.Reward](db,
			"created_at",
			[]string{"created_at", "name", "points_cost"},
			[]string{"name"},
		),
	}
}

// FindByID finds a reward by ID within the vendor's scope
func (r *GormRewardRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*loyalty.Reward, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's rewards matching the filter
func (r *GormRewardRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]loyalty.Reward, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's rewards matching the filter
func (r *GormRewardRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the reward and persists it
func (r *GormRewardRepository) Create(ctx context.Context, vendorID uuid.UUID, reward *loyalty.Reward) error {
	return r.create(ctx, vendorID, reward)
}

// Save persists changes to an existing reward after verifying scope
func (r *GormRewardRepository) Save(ctx context.Context, vendorID uuid.UUID, reward *loyalty.Reward) error {
	return r.save(ctx, vendorID, reward)
}

// Delete removes a reward within the vendor's scope
func (r *GormRewardRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ loyalty.RewardRepository = (*GormRewardRepository)(nil)

// GormPointRepository implements the loyalty point ledger using GORM.
// Ledger rows carry no vendor_id; scope is enforced through the customer
// parent, so every operation validates the chain against the customers
// table first. A customer outside the vendor's scope reads as missing.
type GormPointRepository struct {
	db *gorm.DB
}

// NewGormPointRepository creates a new GormPointRepository
func NewGormPointRepository(db *gorm.DB) *GormPointRepository {
	return &GormPointRepository{db: db}
}

func (r *GormPointRepository) customerInScope(ctx context.Context, vendorID, customerID uuid.UUID) error {
	var count int64
	if err := conn(ctx, r.db).
		Table("customers").
		Where("vendor_id = ? AND id = ?", vendorID, customerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByCustomer lists ledger entries for one of the vendor's customers
func (r *GormPointRepository) FindByCustomer(ctx context.Context, vendorID, customerID uuid.UUID, filter shared.Filter) ([]loyalty.PointEntry, error) {
	if err := r.customerInScope(ctx, vendorID, customerID); err != nil {
		return nil, err
	}

	var entries []loyalty.PointEntry
	query := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Append records a ledger entry after validating the customer's vendor chain
func (r *GormPointRepository) Append(ctx context.Context, vendorID uuid.UUID, entry *loyalty.PointEntry) error {
	if err := r.customerInScope(ctx, vendorID, entry.CustomerID); err != nil {
		return err
	}
	return conn(ctx, r.db).Create(entry).Error
}

var _ loyalty.PointRepository = (*GormPointRepository)(nil)
