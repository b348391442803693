package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillLineInput references a menu item to sell. Prices always come from
// the stored menu item, never from the request.
type BillLineInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateBillInput carries a bill creation request
type CreateBillInput struct {
	Items         []BillLineInput
	CustomerID    *uuid.UUID
	Discount      decimal.Decimal
	ExtraCharges  decimal.Decimal
	PaymentMethod string
}
