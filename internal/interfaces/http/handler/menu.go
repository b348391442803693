package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/niorc/backend/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// menuImageLimit caps uploaded menu photos at 8 MiB
const menuImageLimit = 8 << 20

// MenuHandler handles menu item endpoints
type MenuHandler struct {
	BaseHandler
	menuService *catalogapp.MenuService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menuService *catalogapp.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// CreateMenuItemRequest is the body for creating a menu item
type CreateMenuItemRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=200"`
	Category        string  `json:"category" binding:"omitempty,max=100"`
	Price           string  `json:"price" binding:"required,money"`
	InventoryItemID *string `json:"inventory_item_id" binding:"omitempty,uuid"`
}

// UpdateMenuItemRequest patches a menu item
type UpdateMenuItemRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category  *string `json:"category" binding:"omitempty,max=100"`
	Price     *string `json:"price" binding:"omitempty,money"`
	Available *bool   `json:"available"`
}

// RegisterRoutes registers the menu endpoints
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	menu := rg.Group("/menu-items")
	{
		menu.POST("", h.Create)
		menu.GET("", h.List)
		menu.GET("/:id", h.Get)
		menu.PATCH("/:id", h.Update)
		menu.DELETE("/:id", h.Delete)
		menu.POST("/extract", h.Extract)
	}
}

// Create creates a menu item
func (h *MenuHandler) Create(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}
	var inventoryID *uuid.UUID
	if req.InventoryItemID != nil {
		id, err := uuid.Parse(*req.InventoryItemID)
		if err != nil {
			h.BadRequest(c, "Invalid inventory item ID")
			return
		}
		inventoryID = &id
	}

	item, err := h.menuService.Create(c.Request.Context(), vendor, catalogapp.CreateMenuItemInput{
		Name:            req.Name,
		Category:        req.Category,
		Price:           price,
		InventoryItemID: inventoryID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List lists the vendor's menu items
func (h *MenuHandler) List(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.menuService.List(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one menu item
func (h *MenuHandler) Get(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	item, err := h.menuService.Get(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update patches a menu item
func (h *MenuHandler) Update(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var price *decimal.Decimal
	if req.Price != nil {
		p, err := decimal.NewFromString(*req.Price)
		if err != nil {
			h.BadRequest(c, "Invalid price")
			return
		}
		price = &p
	}

	item, err := h.menuService.Update(c.Request.Context(), vendor, id, catalogapp.UpdateMenuItemInput{
		Name:      req.Name,
		Category:  req.Category,
		Price:     price,
		Available: req.Available,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuService.Delete(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Extract creates menu items from an uploaded menu photo
func (h *MenuHandler) Extract(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if fileHeader.Size > menuImageLimit {
		h.BadRequest(c, "Image exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, menuImageLimit))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.menuService.ExtractFromImage(c.Request.Context(), vendor, image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, items)
}
