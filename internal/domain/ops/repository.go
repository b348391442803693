package ops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TableRepository defines the interface for table persistence
type TableRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Table, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Table, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, table *Table) error
	Save(ctx context.Context, vendorID uuid.UUID, table *Table) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}

// StaffRepository defines the interface for staff and attendance
// persistence. Attendance rows scope through the staff parent; every
// attendance operation validates the staff member's vendor chain first.
type StaffRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Staff, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Staff, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)
	Create(ctx context.Context, vendorID uuid.UUID, staff *Staff) error
	Save(ctx context.Context, vendorID uuid.UUID, staff *Staff) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error

	// FindOpenAttendance returns the staff member's attendance record that
	// has no check-out yet, or NOT_FOUND
	FindOpenAttendance(ctx context.Context, vendorID, staffID uuid.UUID) (*Attendance, error)

	// FindAttendance lists a staff member's attendance records
	FindAttendance(ctx context.Context, vendorID, staffID uuid.UUID, filter shared.Filter) ([]Attendance, error)

	// SaveAttendance creates or updates an attendance record after
	// validating the staff member's vendor chain
	SaveAttendance(ctx context.Context, vendorID uuid.UUID, attendance *Attendance) error
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Expense, error)
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)

	// SumBetween totals expenses incurred inside [from, to)
	SumBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	Create(ctx context.Context, vendorID uuid.UUID, expense *Expense) error
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}
