package loyalty

import (
	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// PointEntry is one loyalty ledger movement for a customer. It carries no
// vendor_id of its own: scope is inherited through the customer parent, and
// repositories must validate that chain on every access.
type PointEntry struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Delta      int       `gorm:"not null" json:"delta"`
	Reason     string    `gorm:"type:varchar(200)" json:"reason"`
}

// TableName returns the table name for GORM
func (PointEntry) TableName() string {
	return "loyalty_points"
}

// NewPointEntry records a ledger movement for a customer
func NewPointEntry(customerID uuid.UUID, delta int, reason string) (*PointEntry, error) {
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_POINTS", "Points delta cannot be zero")
	}

	return &PointEntry{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Delta:      delta,
		Reason:     reason,
	}, nil
}
