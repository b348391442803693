package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Owned is implemented by every entity that belongs to exactly one vendor.
// The vendor reference is stamped once at creation and never changes.
type Owned interface {
	Entity
	VendorRef() uuid.UUID
	StampVendor(uuid.UUID)
}

// VendorEntity is the base for all vendor-owned entities. VendorID is the
// owning profile's ID; it is immutable after creation.
type VendorEntity struct {
	BaseEntity
	VendorID uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
}

// VendorRef returns the owning vendor's ID
func (e *VendorEntity) VendorRef() uuid.UUID {
	return e.VendorID
}

// StampVendor sets the owning vendor. It only takes effect on a fresh
// entity; once a vendor is stamped the reference cannot be reassigned.
func (e *VendorEntity) StampVendor(vendorID uuid.UUID) {
	if e.VendorID == uuid.Nil {
		e.VendorID = vendorID
	}
}

// NewVendorEntity creates a new vendor-owned entity stamped with the owner
func NewVendorEntity(vendorID uuid.UUID) VendorEntity {
	return VendorEntity{
		BaseEntity: NewBaseEntity(),
		VendorID:   vendorID,
	}
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
