package crm

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s]{6,20}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer represents a vendor's customer
type Customer struct {
	shared.VendorEntity
	Name          string `gorm:"type:varchar(200);not null" json:"name"`
	Phone         string `gorm:"type:varchar(20);index" json:"phone"`
	Email         string `gorm:"type:varchar(200)" json:"email"`
	VisitCount    int    `gorm:"not null;default:0" json:"visit_count"`
	PointsBalance int    `gorm:"not null;default:0" json:"points_balance"`
	Notes         string `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer owned by the given vendor
func NewCustomer(vendorID uuid.UUID, name, phone string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}

	return &Customer{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Name:         name,
		Phone:        phone,
	}, nil
}

// Update updates the customer's contact details. Nil fields are left unchanged.
func (c *Customer) Update(name, phone, email, notes *string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
		}
		c.Name = *name
	}
	if phone != nil {
		if *phone != "" && !phonePattern.MatchString(*phone) {
			return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
		}
		c.Phone = *phone
	}
	if email != nil {
		if *email != "" && !emailPattern.MatchString(*email) {
			return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
		}
		c.Email = strings.ToLower(*email)
	}
	if notes != nil {
		c.Notes = *notes
	}
	c.Touch()
	return nil
}

// RecordVisit increments the visit counter
func (c *Customer) RecordVisit() {
	c.VisitCount++
	c.Touch()
}

// AddPoints credits loyalty points to the customer
func (c *Customer) AddPoints(points int) error {
	if points <= 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points to add must be positive")
	}
	c.PointsBalance += points
	c.Touch()
	return nil
}

// RedeemPoints debits loyalty points from the customer
func (c *Customer) RedeemPoints(points int) error {
	if points <= 0 {
		return shared.NewDomainError("INVALID_POINTS", "Points to redeem must be positive")
	}
	if c.PointsBalance < points {
		return shared.ErrInsufficientPoints
	}
	c.PointsBalance -= points
	c.Touch()
	return nil
}
