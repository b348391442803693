// Package ops implements table, staff and expense use cases
package ops

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/ops"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateTableInput carries a table creation request
type CreateTableInput struct {
	Number int
	Seats  int
}

// CreateStaffInput carries a staff creation request
type CreateStaffInput struct {
	Name  string
	Role  string
	Phone string
}

// CreateExpenseInput carries an expense record
type CreateExpenseInput struct {
	Category   string
	Amount     decimal.Decimal
	Note       string
	IncurredAt time.Time
}

// OpsService handles the vendor's day-to-day operational records
type OpsService struct {
	tableRepo   ops.TableRepository
	staffRepo   ops.StaffRepository
	expenseRepo ops.ExpenseRepository
	logger      *zap.Logger
}

// NewOpsService creates a new OpsService
func NewOpsService(tableRepo ops.TableRepository, staffRepo ops.StaffRepository, expenseRepo ops.ExpenseRepository, logger *zap.Logger) *OpsService {
	return &OpsService{
		tableRepo:   tableRepo,
		staffRepo:   staffRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// CreateTable creates a table inside the vendor's scope
func (s *OpsService) CreateTable(ctx context.Context, vendorID uuid.UUID, input CreateTableInput) (*ops.Table, error) {
	table, err := ops.NewTable(vendorID, input.Number, input.Seats)
	if err != nil {
		return nil, err
	}
	if err := s.tableRepo.Create(ctx, vendorID, table); err != nil {
		return nil, err
	}
	return table, nil
}

// ListTables lists the vendor's tables
func (s *OpsService) ListTables(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[ops.Table], error) {
	tables, err := s.tableRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Table]{}, err
	}
	total, err := s.tableRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Table]{}, err
	}
	return shared.NewPaginated(tables, total, filter.Page, filter.PageSize), nil
}

// SetTableOccupied flips a table's occupancy state
func (s *OpsService) SetTableOccupied(ctx context.Context, vendorID, id uuid.UUID, occupied bool) (*ops.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	table.SetOccupied(occupied)
	if err := s.tableRepo.Save(ctx, vendorID, table); err != nil {
		return nil, err
	}
	return table, nil
}

// DeleteTable removes one of the vendor's tables
func (s *OpsService) DeleteTable(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.tableRepo.Delete(ctx, vendorID, id)
}

// CreateStaff creates a staff member inside the vendor's scope
func (s *OpsService) CreateStaff(ctx context.Context, vendorID uuid.UUID, input CreateStaffInput) (*ops.Staff, error) {
	staff, err := ops.NewStaff(vendorID, input.Name, input.Role, input.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.staffRepo.Create(ctx, vendorID, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ListStaff lists the vendor's staff
func (s *OpsService) ListStaff(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[ops.Staff], error) {
	staff, err := s.staffRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Staff]{}, err
	}
	total, err := s.staffRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Staff]{}, err
	}
	return shared.NewPaginated(staff, total, filter.Page, filter.PageSize), nil
}

// DeactivateStaff marks a staff member as no longer employed
func (s *OpsService) DeactivateStaff(ctx context.Context, vendorID, id uuid.UUID) (*ops.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	staff.Deactivate()
	if err := s.staffRepo.Save(ctx, vendorID, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// CheckIn opens an attendance record for the staff member. A second
// check-in while one is still open is rejected.
func (s *OpsService) CheckIn(ctx context.Context, vendorID, staffID uuid.UUID) (*ops.Attendance, error) {
	staff, err := s.staffRepo.FindByID(ctx, vendorID, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, shared.NewDomainError("STAFF_INACTIVE", "Inactive staff cannot check in")
	}

	if _, err := s.staffRepo.FindOpenAttendance(ctx, vendorID, staffID); err == nil {
		return nil, shared.NewDomainError("ALREADY_CHECKED_IN", "Staff member is already checked in")
	} else if !isNotFound(err) {
		return nil, err
	}

	attendance := ops.NewAttendance(staffID, time.Now())
	if err := s.staffRepo.SaveAttendance(ctx, vendorID, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// CheckOut closes the staff member's open attendance record
func (s *OpsService) CheckOut(ctx context.Context, vendorID, staffID uuid.UUID) (*ops.Attendance, error) {
	attendance, err := s.staffRepo.FindOpenAttendance(ctx, vendorID, staffID)
	if err != nil {
		return nil, err
	}
	if err := attendance.Close(time.Now()); err != nil {
		return nil, err
	}
	if err := s.staffRepo.SaveAttendance(ctx, vendorID, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// Attendance lists a staff member's attendance records
func (s *OpsService) Attendance(ctx context.Context, vendorID, staffID uuid.UUID, filter shared.Filter) ([]ops.Attendance, error) {
	return s.staffRepo.FindAttendance(ctx, vendorID, staffID, filter)
}

// CreateExpense records an expense for the vendor
func (s *OpsService) CreateExpense(ctx context.Context, vendorID uuid.UUID, input CreateExpenseInput) (*ops.Expense, error) {
	expense, err := ops.NewExpense(vendorID, input.Category, input.Amount, input.IncurredAt)
	if err != nil {
		return nil, err
	}
	expense.Note = input.Note
	if err := s.expenseRepo.Create(ctx, vendorID, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists the vendor's expenses
func (s *OpsService) ListExpenses(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[ops.Expense], error) {
	expenses, err := s.expenseRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Expense]{}, err
	}
	total, err := s.expenseRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[ops.Expense]{}, err
	}
	return shared.NewPaginated(expenses, total, filter.Page, filter.PageSize), nil
}

// DeleteExpense removes one of the vendor's expenses
func (s *OpsService) DeleteExpense(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, vendorID, id)
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
