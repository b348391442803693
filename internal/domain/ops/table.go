package ops

import (
	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// Table represents a physical table at a vendor's premises
type Table struct {
	shared.VendorEntity
	Number   int  `gorm:"not null" json:"number"`
	Seats    int  `gorm:"not null;default:2" json:"seats"`
	Occupied bool `gorm:"not null;default:false" json:"occupied"`
}

// TableName returns the table name for GORM
func (Table) TableName() string {
	return "tables"
}

// NewTable creates a new table owned by the given vendor
func NewTable(vendorID uuid.UUID, number, seats int) (*Table, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Table number must be positive")
	}
	if seats <= 0 {
		return nil, shared.NewDomainError("INVALID_SEATS", "Seat count must be positive")
	}

	return &Table{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Number:       number,
		Seats:        seats,
	}, nil
}

// SetOccupied flips the occupancy state
func (t *Table) SetOccupied(occupied bool) {
	t.Occupied = occupied
	t.Touch()
}
