package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment state of a bill
type BillStatus string

const (
	BillStatusUnpaid    BillStatus = "unpaid"
	BillStatusPaid      BillStatus = "paid"
	BillStatusCancelled BillStatus = "cancelled"
)

// LineItem is one sold menu entry, denormalized onto the bill at write
// time so historical bills survive later menu edits.
type LineItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// LineItems is stored as a jsonb column
type LineItems []LineItem

// Value implements driver.Valuer
func (l LineItems) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *LineItems) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for LineItems")
	}
	return json.Unmarshal(data, l)
}

// Bill represents a sale. TotalAmount and FinalAmount are always computed
// here from the line items; amounts arriving from a client are ignored.
type Bill struct {
	shared.VendorEntity
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Items         LineItems       `gorm:"type:jsonb;not null" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount"`
	ExtraCharges  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"extra_charges"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"final_amount"`
	PaymentMethod string          `gorm:"type:varchar(30);not null;default:'cash'" json:"payment_method"`
	Status        BillStatus      `gorm:"type:varchar(20);not null;default:'unpaid'" json:"status"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a bill from line items, recomputing every amount.
// Invariant: FinalAmount = TotalAmount - Discount + ExtraCharges.
func NewBill(vendorID uuid.UUID, items []LineItem, discount, extraCharges decimal.Decimal, paymentMethod string) (*Bill, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A bill must have at least one line item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if extraCharges.IsNegative() {
		return nil, shared.NewDomainError("INVALID_EXTRA_CHARGES", "Extra charges cannot be negative")
	}

	total := decimal.Zero
	computed := make(LineItems, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Line item price cannot be negative")
		}
		item.Total = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		computed[i] = item
		total = total.Add(item.Total)
	}

	if discount.GreaterThan(total) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the bill total")
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	return &Bill{
		VendorEntity:  shared.NewVendorEntity(vendorID),
		Items:         computed,
		TotalAmount:   total,
		Discount:      discount,
		ExtraCharges:  extraCharges,
		FinalAmount:   total.Sub(discount).Add(extraCharges),
		PaymentMethod: paymentMethod,
		Status:        BillStatusUnpaid,
	}, nil
}

// AttachCustomer links the bill to one of the vendor's customers
func (b *Bill) AttachCustomer(customerID uuid.UUID) {
	b.CustomerID = &customerID
	b.Touch()
}

// MarkPaid settles the bill
func (b *Bill) MarkPaid() error {
	if b.Status != BillStatusUnpaid {
		return shared.NewDomainError("INVALID_STATE", "Only an unpaid bill can be marked paid")
	}
	b.Status = BillStatusPaid
	b.Touch()
	return nil
}

// Cancel voids the bill
func (b *Bill) Cancel() error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "A paid bill cannot be cancelled")
	}
	b.Status = BillStatusCancelled
	b.Touch()
	return nil
}
