// Package billing implements the sale and settlement use cases
package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/loyalty"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// One loyalty point is accrued per this many currency units of a paid
// bill's final amount, rounded down.
var pointsAccrualUnit = decimal.NewFromInt(10)

// BillingService handles bill creation, settlement and rendering.
// Creation runs inside one transaction so the bill row, the stock
// decrements and the customer visit either all land or none do.
type BillingService struct {
	billRepo     billing.BillRepository
	menuRepo     catalog.MenuItemRepository
	itemRepo     inventory.ItemRepository
	customerRepo crm.CustomerRepository
	pointRepo    loyalty.PointRepository
	renderer     billing.Renderer
	tx           shared.Tx
	logger       *zap.Logger
}

// NewBillingService creates a new BillingService. renderer may be nil when
// no rendering backend is configured.
func NewBillingService(
	billRepo billing.BillRepository,
	menuRepo catalog.MenuItemRepository,
	itemRepo inventory.ItemRepository,
	customerRepo crm.CustomerRepository,
	pointRepo loyalty.PointRepository,
	renderer billing.Renderer,
	tx shared.Tx,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		billRepo:     billRepo,
		menuRepo:     menuRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		pointRepo:    pointRepo,
		renderer:     renderer,
		tx:           tx,
		logger:       logger,
	}
}

// Create creates a bill from menu item references. Amounts are computed
// server-side from the stored menu prices; linked inventory is decremented
// under row locks inside the same transaction.
func (s *BillingService) Create(ctx context.Context, vendorID uuid.UUID, input CreateBillInput) (*billing.Bill, error) {
	if len(input.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A bill must have at least one line item")
	}

	var created *billing.Bill
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		menuItems, err := s.resolveMenuItems(ctx, vendorID, input.Items)
		if err != nil {
			return err
		}

		lines := make([]billing.LineItem, 0, len(input.Items))
		for _, line := range input.Items {
			menuItem := menuItems[line.MenuItemID]
			lines = append(lines, billing.LineItem{
				ItemID:   menuItem.ID,
				Name:     menuItem.Name,
				Quantity: line.Quantity,
				Price:    menuItem.Price,
			})
		}

		bill, err := billing.NewBill(vendorID, lines, input.Discount, input.ExtraCharges, input.PaymentMethod)
		if err != nil {
			return err
		}

		if err := s.decrementStock(ctx, vendorID, menuItems, input.Items); err != nil {
			return err
		}

		if input.CustomerID != nil {
			customer, err := s.customerRepo.FindByID(ctx, vendorID, *input.CustomerID)
			if err != nil {
				return err
			}
			customer.RecordVisit()
			if err := s.customerRepo.Save(ctx, vendorID, customer); err != nil {
				return err
			}
			bill.AttachCustomer(customer.ID)
		}

		if err := s.billRepo.Create(ctx, vendorID, bill); err != nil {
			return err
		}
		created = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bill created",
		zap.String("bill_id", created.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("final_amount", created.FinalAmount.String()))
	return created, nil
}

// Get returns one of the vendor's bills
func (s *BillingService) Get(ctx context.Context, vendorID, id uuid.UUID) (*billing.Bill, error) {
	return s.billRepo.FindByID(ctx, vendorID, id)
}

// List lists the vendor's bills
func (s *BillingService) List(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[billing.Bill], error) {
	bills, err := s.billRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[billing.Bill]{}, err
	}
	total, err := s.billRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[billing.Bill]{}, err
	}
	return shared.NewPaginated(bills, total, filter.Page, filter.PageSize), nil
}

// MarkPaid settles an unpaid bill. When a customer is attached, loyalty
// points are accrued in the same transaction as the status change.
func (s *BillingService) MarkPaid(ctx context.Context, vendorID, id uuid.UUID) (*billing.Bill, error) {
	var paid *billing.Bill
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.FindByID(ctx, vendorID, id)
		if err != nil {
			return err
		}
		if err := bill.MarkPaid(); err != nil {
			return err
		}
		if err := s.billRepo.Save(ctx, vendorID, bill); err != nil {
			return err
		}
		if err := s.accruePoints(ctx, vendorID, bill); err != nil {
			return err
		}
		paid = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// Cancel voids an unsettled bill
func (s *BillingService) Cancel(ctx context.Context, vendorID, id uuid.UUID) (*billing.Bill, error) {
	bill, err := s.billRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Cancel(); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, vendorID, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// RenderPDF renders a printable document for the bill
func (s *BillingService) RenderPDF(ctx context.Context, vendorID, id uuid.UUID) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("RENDERING_UNAVAILABLE", "Bill rendering is not configured")
	}
	bill, err := s.billRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.Render(ctx, bill)
	if err != nil {
		s.logger.Error("Bill rendering failed",
			zap.String("bill_id", bill.ID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("RENDERING_FAILED", "Bill rendering failed")
	}
	return pdf, nil
}

// resolveMenuItems loads the referenced menu items inside the vendor's
// scope. A missing or out-of-scope reference fails the whole bill.
func (s *BillingService) resolveMenuItems(ctx context.Context, vendorID uuid.UUID, lines []BillLineInput) (map[uuid.UUID]catalog.MenuItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	menuItems, err := s.menuRepo.FindByIDs(ctx, vendorID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if !item.Available {
			return nil, shared.NewDomainError("ITEM_UNAVAILABLE",
				fmt.Sprintf("Menu item %q is not available", item.Name))
		}
	}
	return byID, nil
}

// decrementStock takes the sold quantity out of every linked inventory
// record under a row lock. Insufficient stock fails the bill.
func (s *BillingService) decrementStock(ctx context.Context, vendorID uuid.UUID, menuItems map[uuid.UUID]catalog.MenuItem, lines []BillLineInput) error {
	// Aggregate per inventory item so two lines of the same stock record
	// take a single lock.
	quantities := make(map[uuid.UUID]int)
	order := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		menuItem := menuItems[line.MenuItemID]
		if menuItem.InventoryItemID == nil {
			continue
		}
		if _, ok := quantities[*menuItem.InventoryItemID]; !ok {
			order = append(order, *menuItem.InventoryItemID)
		}
		quantities[*menuItem.InventoryItemID] += line.Quantity
	}

	for _, inventoryID := range order {
		item, err := s.itemRepo.FindByIDForUpdate(ctx, vendorID, inventoryID)
		if err != nil {
			return err
		}
		if err := item.Decrement(decimal.NewFromInt(int64(quantities[inventoryID]))); err != nil {
			return err
		}
		if err := s.itemRepo.Save(ctx, vendorID, item); err != nil {
			return err
		}
	}
	return nil
}

// accruePoints credits the attached customer with points for the settled
// bill and records the movement in the ledger.
func (s *BillingService) accruePoints(ctx context.Context, vendorID uuid.UUID, bill *billing.Bill) error {
	if bill.CustomerID == nil {
		return nil
	}
	points := int(bill.FinalAmount.Div(pointsAccrualUnit).IntPart())
	if points <= 0 {
		return nil
	}

	customer, err := s.customerRepo.FindByID(ctx, vendorID, *bill.CustomerID)
	if err != nil {
		return err
	}
	if err := customer.AddPoints(points); err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, vendorID, customer); err != nil {
		return err
	}

	entry, err := loyalty.NewPointEntry(customer.ID, points, "Bill "+bill.ID.String()+" paid")
	if err != nil {
		return err
	}
	return s.pointRepo.Append(ctx, vendorID, entry)
}
