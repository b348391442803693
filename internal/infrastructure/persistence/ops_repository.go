package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/ops"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	scopedRepo[ops.Table, *ops.Table]
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{
		scopedRepo: newScopedRepo[ops.Table](db,
			"number",
			[]string{"number", "created_at", "seats"},
			nil,
		),
	}
}

// FindByID finds a table by ID within the vendor's scope
func (r *GormTableRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*ops.Table, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's tables matching the filter
func (r *GormTableRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ops.Table, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's tables matching the filter
func (r *GormTableRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the table and persists it
func (r *GormTableRepository) Create(ctx context.Context, vendorID uuid.UUID, table *ops.Table) error {
	return r.create(ctx, vendorID, table)
}

// Save persists changes to an existing table after verifying scope
func (r *GormTableRepository) Save(ctx context.Context, vendorID uuid.UUID, table *ops.Table) error {
	return r.save(ctx, vendorID, table)
}

// Delete removes a table within the vendor's scope
func (r *GormTableRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ ops.TableRepository = (*GormTableRepository)(nil)

// GormStaffRepository implements StaffRepository using GORM. Attendance
// rows carry no vendor_id; their scope is enforced through the staff
// parent, validated against the staff table on every attendance operation.
type GormStaffRepository struct {
	scopedRepo[ops.Staff, *ops.Staff]
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{
		scopedRepo: newScopedRepo[ops.Staff](db,
			"created_at",
			[]string{"created_at", "name", "role"},
			[]string{"name", "role", "phone"},
		),
	}
}

// FindByID finds a staff member by ID within the vendor's scope
func (r *GormStaffRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*ops.Staff, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's staff matching the filter
func (r *GormStaffRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ops.Staff, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's staff matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// Create stamps the vendor onto the staff member and persists it
func (r *GormStaffRepository) Create(ctx context.Context, vendorID uuid.UUID, staff *ops.Staff) error {
	return r.create(ctx, vendorID, staff)
}

// Save persists changes to an existing staff member after verifying scope
func (r *GormStaffRepository) Save(ctx context.Context, vendorID uuid.UUID, staff *ops.Staff) error {
	return r.save(ctx, vendorID, staff)
}

// Delete removes a staff member within the vendor's scope
func (r *GormStaffRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

func (r *GormStaffRepository) staffInScope(ctx context.Context, vendorID, staffID uuid.UUID) error {
	var count int64
	if err := r.conn(ctx).
		Table("staff").
		Where("vendor_id = ? AND id = ?", vendorID, staffID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindOpenAttendance returns the staff member's attendance record that has
// no check-out yet
func (r *GormStaffRepository) FindOpenAttendance(ctx context.Context, vendorID, staffID uuid.UUID) (*ops.Attendance, error) {
	if err := r.staffInScope(ctx, vendorID, staffID); err != nil {
		return nil, err
	}

	var attendance ops.Attendance
	if err := r.conn(ctx).
		Where("staff_id = ? AND check_out IS NULL", staffID).
		Order("check_in DESC").
		First(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attendance, nil
}

// FindAttendance lists a staff member's attendance records
func (r *GormStaffRepository) FindAttendance(ctx context.Context, vendorID, staffID uuid.UUID, filter shared.Filter) ([]ops.Attendance, error) {
	if err := r.staffInScope(ctx, vendorID, staffID); err != nil {
		return nil, err
	}

	var records []ops.Attendance
	query := r.conn(ctx).
		Where("staff_id = ?", staffID).
		Order("check_in DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SaveAttendance creates or updates an attendance record after validating
// the staff member's vendor chain
func (r *GormStaffRepository) SaveAttendance(ctx context.Context, vendorID uuid.UUID, attendance *ops.Attendance) error {
	if err := r.staffInScope(ctx, vendorID, attendance.StaffID); err != nil {
		return err
	}
	return r.conn(ctx).Save(attendance).Error
}

var _ ops.StaffRepository = (*GormStaffRepository)(nil)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	scopedRepo[ops.Expense, *ops.Expense]
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{
		scopedRepo: newScopedRepo[ops.Expense](db,
			"incurred_at",
			[]string{"incurred_at", "created_at", "amount", "category"},
			[]string{"category", "note"},
		),
	}
}

// FindByID finds an expense by ID within the vendor's scope
func (r *GormExpenseRepository) FindByID(ctx context.Context, vendorID, id uuid.UUID) (*ops.Expense, error) {
	return r.findByID(ctx, vendorID, id)
}

// FindAll lists the vendor's expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ops.Expense, error) {
	return r.findAll(ctx, vendorID, filter)
}

// Count counts the vendor's expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.count(ctx, vendorID, filter)
}

// SumBetween totals expenses incurred inside [from, to)
func (r *GormExpenseRepository) SumBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.scoped(ctx, vendorID).
		Where("incurred_at >= ? AND incurred_at < ?", from, to).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Create stamps the vendor onto the expense and persists it
func (r *GormExpenseRepository) Create(ctx context.Context, vendorID uuid.UUID, expense *ops.Expense) error {
	return r.create(ctx, vendorID, expense)
}

// Delete removes an expense within the vendor's scope
func (r *GormExpenseRepository) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return r.delete(ctx, vendorID, id)
}

var _ ops.ExpenseRepository = (*GormExpenseRepository)(nil)
