// Package vendorscope provides multi-tenant database scoping for GORM.
//
// Every owned-entity table carries a vendor_id column referencing the
// owning profile. This package supplies the scope applied by every
// repository query and a callback layer that re-applies the filter at the
// GORM statement level, so a query that somehow skips the repository path
// still cannot cross vendors.
package vendorscope

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// ErrVendorIDRequired is returned when a vendor id is required but not found
var ErrVendorIDRequired = errors.New("vendor_id is required but not found in context")

// ErrInvalidVendorID is returned when the vendor id format is invalid
var ErrInvalidVendorID = errors.New("invalid vendor_id format")

// Scope applies vendor filtering to GORM queries
func Scope(vendorID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("vendor_id = ?", vendorID)
	}
}

// FromContext returns the vendor ID carried in the request context, or an
// error when it is absent or malformed
func FromContext(ctx context.Context) (uuid.UUID, error) {
	raw := logger.GetVendorID(ctx)
	if raw == "" {
		return uuid.Nil, ErrVendorIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidVendorID
	}
	return id, nil
}
