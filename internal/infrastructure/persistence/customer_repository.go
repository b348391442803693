package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	scopedRepo[crm.Customer, *crm.Customer]
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{
		scopedRepo: newScopedRepo[crm.Customer](db,
			"created_at",
			[]string{"created_at", "name", "visit_count", "points_balance"},
			[]string{"name", "phone", "email"},
		),
	}
}

// FindByID finds a customer by ID within the vendor's scope
func (r *GormCustomerRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*crm.Customer, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindByPhone finds a customer by phone within the vendor's scope
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (*crm.Customer, error) {
	if phone == "" {
		return nil, shared.ErrNotFound
	}
	var customer crm.Customer
	if err := r.conn(ctx).
		Where("vendor_id = ? AND phone = ?", vendorID, phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll lists the vendor's customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// CountCreatedBetween counts customers created inside [from, to)
func (r *GormCustomerRepository) CountCreatedBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.scoped(ctx, vendorID).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPhone reports whether the vendor already has a customer with the phone
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (bool, error) {
	if phone == "" {
		return false, nil
	}
	var count int64
	if err := r.scoped(ctx, vendorID).
		Where("phone = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stamps the vendor onto the customer and persists it
func (r *GormCustomerRepository) Create(ctx context.Context, vendorID uuid.UUID, customer *crm.Customer) error {
	return r.create(ctx, vendorID, customer)
}

// Save persists changes to an existing customer after verifying scope
func (r *GormCustomerRepository) Save(ctx context.Context, vendorID uuid.UUID, customer *crm.Customer) error {
	return r.save(ctx, vendorID, customer)
}

// Delete removes a customer within the vendor's scope
func (r *GormCustomerRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
