package ops

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Expense is a business expense recorded by a vendor
type Expense struct {
	shared.VendorEntity
	Category   string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Note       string          `gorm:"type:text" json:"note"`
	IncurredAt time.Time       `gorm:"not null;index" json:"incurred_at"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense records a new expense for the given vendor
func NewExpense(vendorID uuid.UUID, category string, amount decimal.Decimal, incurredAt time.Time) (*Expense, error) {
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}

	return &Expense{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Category:     category,
		Amount:       amount,
		IncurredAt:   incurredAt,
	}, nil
}
