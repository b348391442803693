package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	scopedRepo[billing.Bill, *billing.Bill]
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{
		scopedRepo: newScopedRepo[billing.Bill](db,
			"created_at",
			[]string{"created_at", "final_amount", "status"},
			nil,
		),
	}
}

// FindByID finds a bill by ID within the vendor's scope
func (r *GormBillRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*billing.Bill, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	return r.findAll(ctx, vendorID, filter)
}

// FindBetween lists bills created inside [from, to), newest first
func (r *GormBillRepository) FindBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]billing.Bill, error) {
	var bills []billing.Bill
	if err := r.conn(ctx).
		Where("vendor_id = ? AND created_at >= ? AND created_at < ?", vendorID, from, to).
		Order("created_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Count counts the vendor's bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the bill and persists it
func (r *GormBillRepository) Create(ctx context.Context, vendorID uuid.UUID, bill *billing.Bill) error {
	return r.create(ctx, vendorID, bill)
}

// Save persists changes to an existing bill after verifying scope
func (r *GormBillRepository) Save(ctx context.Context, vendorID uuid.UUID, bill *billing.Bill) error {
	return r.save(ctx, vendorID, bill)
}

// Delete removes a bill within the vendor's scope
func (r *GormBillRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ billing.BillRepository = (*GormBillRepository)(nil)
