package ops

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// Staff represents an employee of a vendor
type Staff struct {
	shared.VendorEntity
	Name   string `gorm:"type:varchar(200);not null" json:"name"`
	Role   string `gorm:"type:varchar(100)" json:"role"`
	Phone  string `gorm:"type:varchar(20)" json:"phone"`
	Active bool   `gorm:"not null;default:true" json:"active"`
}

// TableName returns the table name for GORM
func (Staff) TableName() string {
	return "staff"
}

// NewStaff creates a new staff member owned by the given vendor
func NewStaff(vendorID uuid.UUID, name, role, phone string) (*Staff, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}

	return &Staff{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Name:         name,
		Role:         role,
		Phone:        phone,
		Active:       true,
	}, nil
}

// Deactivate marks the staff member as no longer employed
func (s *Staff) Deactivate() {
	s.Active = false
	s.Touch()
}

// Attendance is one check-in/check-out record. Like the loyalty ledger it
// has no vendor_id of its own; scope is inherited through the staff parent.
type Attendance struct {
	shared.BaseEntity
	StaffID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	CheckIn  time.Time  `gorm:"not null" json:"check_in"`
	CheckOut *time.Time `json:"check_out,omitempty"`
}

// TableName returns the table name for GORM
func (Attendance) TableName() string {
	return "staff_attendance"
}

// NewAttendance opens an attendance record at the given time
func NewAttendance(staffID uuid.UUID, checkIn time.Time) *Attendance {
	return &Attendance{
		BaseEntity: shared.NewBaseEntity(),
		StaffID:    staffID,
		CheckIn:    checkIn,
	}
}

// Close records the check-out time
func (a *Attendance) Close(checkOut time.Time) error {
	if a.CheckOut != nil {
		return shared.NewDomainError("INVALID_STATE", "Attendance record is already closed")
	}
	if checkOut.Before(a.CheckIn) {
		return shared.NewDomainError("INVALID_CHECKOUT", "Check-out cannot precede check-in")
	}
	a.CheckOut = &checkOut
	a.Touch()
	return nil
}
