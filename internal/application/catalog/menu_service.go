// Package catalog implements menu management use cases
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/catalog"
	"github.com/niorc/backend/internal/domain/inventory"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateMenuItemInput carries a menu item creation request
type CreateMenuItemInput struct {
	Name            string
	Category        string
	Price           decimal.Decimal
	InventoryItemID *uuid.UUID
}

// UpdateMenuItemInput carries a menu item patch; nil fields stay unchanged
type UpdateMenuItemInput struct {
	Name      *string
	Category  *string
	Price     *decimal.Decimal
	Available *bool
}

// MenuService handles menu item operations for one vendor at a time
type MenuService struct {
	menuRepo      catalog.MenuItemRepository
	inventoryRepo inventory.ItemRepository
	extractor     catalog.MenuExtractor
	logger        *zap.Logger
}

// NewMenuService creates a new MenuService. The extractor may be nil when
// no AI backend is configured.
func NewMenuService(menuRepo catalog.MenuItemRepository, inventoryRepo inventory.ItemRepository, extractor catalog.MenuExtractor, logger *zap.Logger) *MenuService {
	return &MenuService{
		menuRepo:      menuRepo,
		inventoryRepo: inventoryRepo,
		extractor:     extractor,
		logger:        logger,
	}
}

// Create creates a menu item inside the vendor's scope. A linked inventory
// item must itself be inside the scope.
func (s *MenuService) Create(ctx context.Context, vendorID uuid.UUID, input CreateMenuItemInput) (*catalog.MenuItem, error) {
	item, err := catalog.NewMenuItem(vendorID, input.Name, input.Category, input.Price)
	if err != nil {
		return nil, err
	}

	if input.InventoryItemID != nil {
		if _, err := s.inventoryRepo.FindByID(ctx, vendorID, *input.InventoryItemID); err != nil {
			return nil, err
		}
		item.LinkInventory(*input.InventoryItemID)
	}

	if err := s.menuRepo.Create(ctx, vendorID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one of the vendor's menu items
func (s *MenuService) Get(ctx context.Context, vendorID, id uuid.UUID) (*catalog.MenuItem, error) {
	return s.menuRepo.FindByID(ctx, vendorID, id)
}

// List lists the vendor's menu items
func (s *MenuService) List(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) (shared.Paginated[catalog.MenuItem], error) {
	items, err := s.menuRepo.FindAll(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[catalog.MenuItem]{}, err
	}
	total, err := s.menuRepo.Count(ctx, vendorID, filter)
	if err != nil {
		return shared.Paginated[catalog.MenuItem]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update patches one of the vendor's menu items
func (s *MenuService) Update(ctx context.Context, vendorID, id uuid.UUID, input UpdateMenuItemInput) (*catalog.MenuItem, error) {
	item, err := s.menuRepo.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}

	if err := item.Update(input.Name, input.Category, input.Price, input.Available); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Save(ctx, vendorID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one of the vendor's menu items
func (s *MenuService) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	return s.menuRepo.Delete(ctx, vendorID, id)
}

// ExtractFromImage recognizes menu entries from an uploaded image and
// creates them in one pass. Entries whose price does not parse are skipped
// rather than failing the batch.
func (s *MenuService) ExtractFromImage(ctx context.Context, vendorID uuid.UUID, image []byte, mimeType string) ([]catalog.MenuItem, error) {
	if s.extractor == nil {
		return nil, shared.NewDomainError("EXTRACTION_UNAVAILABLE", "Menu extraction is not configured")
	}

	extracted, err := s.extractor.Extract(ctx, image, mimeType)
	if err != nil {
		s.logger.Error("Menu extraction failed", zap.Error(err))
		return nil, shared.NewDomainError("EXTRACTION_FAILED", "Could not recognize menu entries from the image")
	}

	created := make([]catalog.MenuItem, 0, len(extracted))
	for _, e := range extracted {
		price, err := decimal.NewFromString(e.Price)
		if err != nil || price.IsNegative() {
			s.logger.Warn("Skipping extracted entry with unparseable price",
				zap.String("name", e.Name),
				zap.String("price", e.Price))
			continue
		}

		item, err := catalog.NewMenuItem(vendorID, e.Name, e.Category, price)
		if err != nil {
			s.logger.Warn("Skipping invalid extracted entry", zap.String("name", e.Name), zap.Error(err))
			continue
		}
		if err := s.menuRepo.Create(ctx, vendorID, item); err != nil {
			return nil, err
		}
		created = append(created, *item)
	}
	return created, nil
}
