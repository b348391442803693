package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence.
// Every operation requires the calling vendor's ID; rows outside that
// vendor's scope behave exactly like missing rows.
type CustomerRepository interface {
	// FindByID finds a customer by ID within the vendor's scope
	FindByID(ctx context.Context, vendorID, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone within the vendor's scope
	FindByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (*Customer, error)

	// FindAll lists the vendor's customers
	FindAll(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Count counts the vendor's customers
	Count(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (int64, error)

	// CountCreatedBetween counts customers created inside [from, to)
	CountCreatedBetween(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (int64, error)

	// ExistsByPhone reports whether the vendor already has a customer with the phone
	ExistsByPhone(ctx context.Context, vendorID uuid.UUID, phone string) (bool, error)

	// Create stamps the vendor onto the customer and persists it
	Create(ctx context.Context, vendorID uuid.UUID, customer *Customer) error

	// Save persists changes to an existing customer after verifying scope
	Save(ctx context.Context, vendorID uuid.UUID, customer *Customer) error

	// Delete removes a customer within the vendor's scope
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
}
