package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a stocked ingredient or supply owned by a vendor
type Item struct {
	shared.VendorEntity
	Name              string          `gorm:"type:varchar(200);not null" json:"name"`
	Unit              string          `gorm:"type:varchar(20);not null;default:'unit'" json:"unit"`
	Stock             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"stock"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"low_stock_threshold"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item owned by the given vendor
func NewItem(vendorID uuid.UUID, name, unit string, stock decimal.Decimal) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Inventory item name cannot be empty")
	}
	if stock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if unit == "" {
		unit = "unit"
	}

	return &Item{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Name:         name,
		Unit:         unit,
		Stock:        stock,
	}, nil
}

// Decrement reduces stock by qty, refusing to go negative
func (i *Item) Decrement(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.Stock.LessThan(qty) {
		return shared.ErrInsufficientStock
	}
	i.Stock = i.Stock.Sub(qty)
	i.Touch()
	return nil
}

// Increment raises stock by qty
func (i *Item) Increment(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Stock = i.Stock.Add(qty)
	i.Touch()
	return nil
}

// SetThreshold sets the low-stock alerting threshold
func (i *Item) SetThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.Touch()
	return nil
}

// IsLowStock reports whether stock has fallen to or below the threshold
func (i *Item) IsLowStock() bool {
	return i.LowStockThreshold.IsPositive() && i.Stock.LessThanOrEqual(i.LowStockThreshold)
}
