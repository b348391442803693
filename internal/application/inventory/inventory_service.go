// Package inventory implements stock management use cases
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/notify"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateItemInput carries an inventory item creation request
type CreateItemInput struct {
	Name              string
	Unit              string
	Stock             decimal.Decimal
	LowStockThreshold decimal.Decimal
}

// AdjustStockInput moves stock up or down by a positive quantity
type AdjustStockInput struct {
	Quantity  decimal.Decimal
	Direction string // "in" or "out"
}

// InventoryService handles stock operations for one vendor at a time
type InventoryService struct {
	itemRepo         inventory.ItemRepository
	notificationRepo notify.NotificationRepository
	tx               shared.Tx
	logger           *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(itemRepo inventory.ItemRepository, notificationRepo notify.NotificationRepository, tx shared.Tx, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		itemRepo:         itemRepo,
		notificationRepo: notificationRepo,
		tx:               tx,
		logger:           logger,
	}
}

// Create creates an inventory item inside the vendor's scope
func (s *InventoryService) Create(ctx context.Context, vendorID uuid.UUID, input CreateItemInput) (*inventory.Item, error) {
	item, err := inventory.NewItem(vendorID, input.Name, input.Unit, input.Stock)
	if err != nil {
		return nil, err
	}
	if input.LowStockThreshold.IsPositive() {
		if err := item.SetThreshold(input.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Create(ctx, vendorID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one of the vendor's inventory items
func (s *InventoryService) Get(ctx context.Context, vendorID, id uuid.UUID) (*inventory.Item, error) {
	return s.itemRepo.FindByID(ctx, vendorID, id)
}

// List lists the vendor's inventory items
func (s *InventoryService) List(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[inventory.Item], error) {
	items, err := s.itemRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[inventory.Item]{}, err
	}
	total, err := s.itemRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[inventory.Item]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// LowStock lists items at or below their low-stock threshold
func (s *InventoryService) LowStock(ctx context.Context, vendorID uuid.UUID) ([]inventory.Item, error) {
	return s.itemRepo.FindLowStock(ctx, vendorID)
}

// SetThreshold updates an item's low-stock threshold
func (s *InventoryService) SetThreshold(ctx context.Context, vendorID, id uuid.UUID, threshold decimal.Decimal) (*inventory.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if err := item.SetThreshold(threshold); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, vendorID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Adjust moves an item's stock under a row lock. Stock can never go
// negative; an "out" larger than the current stock fails the whole call.
func (s *InventoryService) Adjust(ctx context.Context, vendorID, id uuid.UUID, input AdjustStockInput) (*inventory.Item, error) {
	var adjusted *inventory.Item
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		item, err := s.itemRepo.FindByIDForUpdate(ctx, vendorID, id)
		if err != nil {
			return err
		}

		switch input.Direction {
		case "in":
			err = item.Increment(input.Quantity)
		case "out":
			err = item.Decrement(input.Quantity)
		default:
			err = shared.NewDomainError("INVALID_DIRECTION", "Stock adjustment direction must be 'in' or 'out'")
		}
		if err != nil {
			return err
		}

		if err := s.itemRepo.Save(ctx, vendorID, item); err != nil {
			return err
		}
		adjusted = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.alertIfLow(ctx, vendorID, adjusted)
	return adjusted, nil
}

// Delete removes one of the vendor's inventory items
func (s *InventoryService) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.itemRepo.Delete(ctx, vendorID, id)
}

// alertIfLow drops a low-stock notification. Best-effort only.
func (s *InventoryService) alertIfLow(ctx context.Context, vendorID uuid.UUID, item *inventory.Item) {
	if item == nil || !item.IsLowStock() {
		return
	}
	notification, err := notify.NewNotification(vendorID,
		"Low stock: "+item.Name,
		item.Name+" is at "+item.Stock.String()+" "+item.Unit+", at or below its threshold.")
	if err != nil {
		return
	}
	if err := s.notificationRepo.Create(ctx, vendorID, notification); err != nil {
		s.logger.Warn("Failed to create low-stock notification",
			zap.String("item_id", item.ID.String()),
			zap.Error(err))
	}
}
