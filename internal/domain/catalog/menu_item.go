package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem represents a sellable item on a vendor's menu
type MenuItem struct {
	shared.VendorEntity
	Name            string          `gorm:"type:varchar(200);not null" json:"name"`
	Category        string          `gorm:"type:varchar(100);index" json:"category"`
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Available       bool            `gorm:"not null;default:true" json:"available"`
	InventoryItemID *uuid.UUID      `gorm:"type:uuid;index" json:"inventory_item_id,omitempty"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// NewMenuItem creates a new menu item owned by the given vendor
func NewMenuItem(vendorID uuid.UUID, name, category string, price decimal.Decimal) (*MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &MenuItem{
		VendorEntity: shared.NewVendorEntity(vendorID),
		Name:         name,
		Category:     category,
		Price:        price,
		Available:    true,
	}, nil
}

// Update updates the item's mutable fields. Nil fields are left unchanged.
func (m *MenuItem) Update(name, category *string, price *decimal.Decimal, available *bool) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
		}
		m.Name = *name
	}
	if category != nil {
		m.Category = *category
	}
	if price != nil {
		if price.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		m.Price = *price
	}
	if available != nil {
		m.Available = *available
	}
	m.Touch()
	return nil
}

// LinkInventory ties the menu item to a stock record so sales decrement it
func (m *MenuItem) LinkInventory(inventoryItemID uuid.UUID) {
	m.InventoryItemID = &inventoryItemID
	m.Touch()
}
